package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/m04kA/ludoteca-service/internal/calendar"
	"github.com/m04kA/ludoteca-service/internal/dashboard"
	"github.com/m04kA/ludoteca-service/internal/domain"
	bookingModels "github.com/m04kA/ludoteca-service/internal/service/bookings/models"
	slotModels "github.com/m04kA/ludoteca-service/internal/service/slots/models"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

var errMissingFlag = errors.New("missing required flag")

type app struct {
	client interface {
		dashboard.BookingAPI
		dashboard.SlotAPI
	}
	out io.Writer
	log dashboard.Logger
}

// Success / Failure печатают исход мутации оператору
func (a *app) Success(message string) {
	fmt.Fprintf(a.out, "ok: %s\n", message)
}

func (a *app) Failure(message string, err error) {
	fmt.Fprintf(a.out, "failed: %s: %v\n", message, err)
}

// boardFlags общие флаги панели бронирований
type boardFlags struct {
	kind      string
	month     string
	trailing  int
	pageSize  int
	weekOrder string
}

func (f *boardFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.kind, "kind", "", "booking kind: birthday | daycare")
	fs.StringVar(&f.month, "month", "", "month YYYY-MM to load (default: current)")
	fs.IntVar(&f.trailing, "trailing", 2, "months shown before the current one")
	fs.IntVar(&f.pageSize, "page-size", domain.DefaultPageSize, "bookings per week page")
	fs.StringVar(&f.weekOrder, "week-order", string(calendar.WeeksDescending), "week order inside a month: asc | desc")
}

func (a *app) bookingBoard(f *boardFlags) (*dashboard.BookingBoard, error) {
	kind, err := parseKind(f.kind)
	if err != nil {
		return nil, err
	}
	return dashboard.NewBookingBoard(dashboard.BookingBoardConfig{
		Kind:           kind,
		TrailingMonths: f.trailing,
		WeekOrder:      calendar.ParseWeekOrder(f.weekOrder),
		PageSize:       f.pageSize,
	}, a.client, a, a.log), nil
}

// loadBoard загружает текущий месяц и, если задан, месяц из -month
func loadBoard(ctx context.Context, board *dashboard.BookingBoard, month string) error {
	if err := board.Init(ctx); err != nil {
		return err
	}
	if month == "" {
		return nil
	}

	ym, err := calendar.ParseYearMonth(month)
	if err != nil {
		return err
	}
	if board.IsExpanded(ym) {
		return nil
	}
	_, err = board.ToggleMonth(ctx, ym)
	return err
}

// pageFlags повторяемый флаг -page WEEK:N
type pageFlags map[string]int

func (p pageFlags) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, fmt.Sprintf("%s:%d", k, v))
	}
	return strings.Join(parts, ",")
}

func (p pageFlags) Set(value string) error {
	i := strings.LastIndex(value, ":")
	if i <= 0 {
		return fmt.Errorf("page must be WEEK:N, got %q", value)
	}
	n, err := strconv.Atoi(value[i+1:])
	if err != nil || n < 1 {
		return fmt.Errorf("page must be a positive number, got %q", value[i+1:])
	}
	p[value[:i]] = n
	return nil
}

func runBookings(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ContinueOnError)
	var bf boardFlags
	bf.register(fs)
	pages := pageFlags{}
	fs.Var(pages, "page", "week page WEEK:N, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	board, err := a.bookingBoard(&bf)
	if err != nil {
		return err
	}
	if err := loadBoard(ctx, board, bf.month); err != nil {
		return err
	}
	for key, n := range pages {
		board.SetWeekPage(key, n)
	}

	for _, mb := range board.Months() {
		fmt.Fprintf(a.out, "%s  total=%d  %s\n", mb.Start.Format("January 2006"), mb.Total, formatCounts(mb.Counts))
		if !mb.IsLoaded {
			fmt.Fprintln(a.out, "  (not loaded, use -month", mb.Key+")")
			continue
		}
		if !board.IsExpanded(mb.Month) {
			continue
		}
		for _, week := range mb.Weeks {
			items, page, total := board.WeekPage(week)
			fmt.Fprintf(a.out, "  week %s  %s..%s  page %d/%d  %s\n",
				week.Key, businesstime.FormatDate(week.Start), businesstime.FormatDate(week.End),
				page, total, formatCounts(week.Counts))
			printBookings(a.out, items, "    ")
		}
	}
	return nil
}

func runDay(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("day", flag.ContinueOnError)
	var bf boardFlags
	bf.register(fs)
	date := fs.String("date", "", "day YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *date == "" {
		return fmt.Errorf("%w: -date", errMissingFlag)
	}

	day, err := businesstime.ParseDate(*date)
	if err != nil {
		return err
	}
	board, err := a.bookingBoard(&bf)
	if err != nil {
		return err
	}

	items, err := board.SelectDay(ctx, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s  %d bookings\n", *date, len(items))
	printBookings(a.out, items, "  ")
	return nil
}

// bookingMutation разбирает флаги, загружает панель и выполняет fn над бронированием
func bookingMutation(ctx context.Context, a *app, name string, args []string, extra func(fs *flag.FlagSet),
	fn func(board *dashboard.BookingBoard, kind domain.BookingKind, id int64) error) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var bf boardFlags
	bf.register(fs)
	id := fs.Int64("id", 0, "booking id")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("%w: -id", errMissingFlag)
	}

	board, err := a.bookingBoard(&bf)
	if err != nil {
		return err
	}
	if err := loadBoard(ctx, board, bf.month); err != nil {
		return err
	}

	if err := fn(board, domain.BookingKind(strings.ToLower(bf.kind)), *id); err != nil {
		return err
	}

	if bk, err := board.Select(*id); err == nil {
		printBookings(a.out, []domain.Booking{bk}, "")
	}
	return nil
}

func runStatus(ctx context.Context, a *app, args []string) error {
	var to string
	return bookingMutation(ctx, a, "status", args,
		func(fs *flag.FlagSet) { fs.StringVar(&to, "to", "", "new status") },
		func(board *dashboard.BookingBoard, kind domain.BookingKind, id int64) error {
			status, err := bookingModels.ToDomainBookingStatus(kind, strings.ToUpper(to))
			if err != nil {
				return err
			}
			return board.UpdateStatus(ctx, id, status)
		})
}

func runAttendance(ctx context.Context, a *app, args []string) error {
	var value string
	return bookingMutation(ctx, a, "attendance", args,
		func(fs *flag.FlagSet) { fs.StringVar(&value, "value", "", "ATTENDED | NO_SHOW | UNKNOWN") },
		func(board *dashboard.BookingBoard, _ domain.BookingKind, id int64) error {
			attendance, err := bookingModels.ToDomainAttendance(strings.ToUpper(value))
			if err != nil {
				return err
			}
			return board.MarkAttendance(ctx, id, attendance)
		})
}

func runEdit(ctx context.Context, a *app, args []string) error {
	var (
		fs      *flag.FlagSet
		name    string
		email   string
		phone   string
		child   string
		age     int
		guests  int
		comment string
	)
	return bookingMutation(ctx, a, "edit", args,
		func(set *flag.FlagSet) {
			fs = set
			fs.StringVar(&name, "contact-name", "", "contact name")
			fs.StringVar(&email, "contact-email", "", "contact email")
			fs.StringVar(&phone, "contact-phone", "", "contact phone")
			fs.StringVar(&child, "child-name", "", "child name")
			fs.IntVar(&age, "child-age", 0, "child age")
			fs.IntVar(&guests, "guests", 0, "number of guests (birthday)")
			fs.StringVar(&comment, "comment", "", "comment")
		},
		func(board *dashboard.BookingBoard, _ domain.BookingKind, id int64) error {
			// В изменения попадают только явно переданные флаги
			var changes domain.BookingChanges
			fs.Visit(func(f *flag.Flag) {
				switch f.Name {
				case "contact-name":
					changes.ContactName = &name
				case "contact-email":
					changes.ContactEmail = &email
				case "contact-phone":
					changes.ContactPhone = &phone
				case "child-name":
					changes.ChildName = &child
				case "child-age":
					changes.ChildAge = &age
				case "guests":
					changes.Guests = &guests
				case "comment":
					changes.Comment = &comment
				}
			})
			return board.UpdateFields(ctx, id, changes)
		})
}

func runDeleteBooking(ctx context.Context, a *app, args []string) error {
	return bookingMutation(ctx, a, "delete-booking", args, nil,
		func(board *dashboard.BookingBoard, _ domain.BookingKind, id int64) error {
			return board.Delete(ctx, id)
		})
}

func (a *app) slotBoard(ctx context.Context, kindFlag string) (*dashboard.SlotBoard, error) {
	kind, err := parseKind(kindFlag)
	if err != nil {
		return nil, err
	}
	board := dashboard.NewSlotBoard(kind, a.client, a, a.log)
	if err := board.Refresh(ctx); err != nil {
		return nil, err
	}
	return board, nil
}

func runSlots(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("slots", flag.ContinueOnError)
	kind := fs.String("kind", "", "booking kind: birthday | daycare")
	month := fs.String("month", "", "month YYYY-MM (default: current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ym := calendar.YearMonthOf(businesstime.Now())
	if *month != "" {
		var err error
		if ym, err = calendar.ParseYearMonth(*month); err != nil {
			return err
		}
	}

	board, err := a.slotBoard(ctx, *kind)
	if err != nil {
		return err
	}

	cells, stats := board.Calendar(ym)
	fmt.Fprintf(a.out, "%s\n", ym.Start(businesstime.Location()).Format("January 2006"))
	printCalendar(a.out, cells)

	if domain.BookingKind(strings.ToLower(*kind)) == domain.KindBirthday && len(stats) > 0 {
		fmt.Fprintln(a.out)
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tSLOTS\tFREE\tFILL")
		for _, st := range stats {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", businesstime.FormatDate(st.Date), st.Total, st.Available, st.Status)
		}
		tw.Flush()
	}

	fmt.Fprintln(a.out)
	start, end := ym.Start(businesstime.Location()), ym.End(businesstime.Location())
	var inMonth []domain.Slot
	for _, s := range board.Slots() {
		if !s.Start.Before(start) && s.Start.Before(end) {
			inMonth = append(inMonth, s)
		}
	}
	printSlots(a.out, inMonth)
	return nil
}

func runCreateSlot(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create-slot", flag.ContinueOnError)
	kindFlag := fs.String("kind", "", "booking kind: birthday | daycare")
	startFlag := fs.String("start", "", "start YYYY-MM-DDTHH:MM:SS (Europe/Madrid)")
	endFlag := fs.String("end", "", "end YYYY-MM-DDTHH:MM:SS (Europe/Madrid)")
	capacity := fs.Int("capacity", 0, "daycare capacity")
	status := fs.String("status", "", "OPEN | CLOSED")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kind, err := parseKind(*kindFlag)
	if err != nil {
		return err
	}
	start, end, err := parseRange(*startFlag, *endFlag)
	if err != nil {
		return err
	}

	var slot *domain.Slot
	if kind == domain.KindDaycare {
		if *capacity <= 0 {
			return fmt.Errorf("%w: -capacity", errMissingFlag)
		}
		slot = domain.NewDaycareSlot(start, end, *capacity)
	} else {
		slot = domain.NewBirthdaySlot(start, end)
	}
	if *status != "" {
		if slot.Status, err = slotModels.ToDomainSlotStatus(strings.ToUpper(*status)); err != nil {
			return err
		}
	}

	board := dashboard.NewSlotBoard(kind, a.client, a, a.log)
	created, err := board.Create(ctx, slot)
	if err != nil {
		return err
	}
	printSlots(a.out, []domain.Slot{created})
	return nil
}

func runUpdateSlot(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("update-slot", flag.ContinueOnError)
	kind := fs.String("kind", "", "booking kind: birthday | daycare")
	id := fs.Int64("id", 0, "slot id")
	startFlag := fs.String("start", "", "new start")
	endFlag := fs.String("end", "", "new end")
	capacity := fs.Int("capacity", 0, "new daycare capacity")
	status := fs.String("status", "", "OPEN | CLOSED")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("%w: -id", errMissingFlag)
	}

	var changes domain.SlotChanges
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		if parseErr != nil {
			return
		}
		switch f.Name {
		case "start":
			var t time.Time
			if t, parseErr = businesstime.ParseFromAPI(*startFlag); parseErr == nil {
				changes.Start = &t
			}
		case "end":
			var t time.Time
			if t, parseErr = businesstime.ParseFromAPI(*endFlag); parseErr == nil {
				changes.End = &t
			}
		case "capacity":
			changes.Capacity = capacity
		case "status":
			var s domain.SlotStatus
			if s, parseErr = slotModels.ToDomainSlotStatus(strings.ToUpper(*status)); parseErr == nil {
				changes.Status = &s
			}
		}
	})
	if parseErr != nil {
		return parseErr
	}

	board, err := a.slotBoard(ctx, *kind)
	if err != nil {
		return err
	}
	if err := board.Update(ctx, *id, changes); err != nil {
		return err
	}

	for _, s := range board.Slots() {
		if s.ID == *id {
			printSlots(a.out, []domain.Slot{s})
		}
	}
	return nil
}

func runDeleteSlot(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("delete-slot", flag.ContinueOnError)
	kind := fs.String("kind", "", "booking kind: birthday | daycare")
	id := fs.Int64("id", 0, "slot id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("%w: -id", errMissingFlag)
	}

	board, err := a.slotBoard(ctx, *kind)
	if err != nil {
		return err
	}
	return board.Delete(ctx, *id)
}

func parseKind(s string) (domain.BookingKind, error) {
	if s == "" {
		return "", fmt.Errorf("%w: -kind", errMissingFlag)
	}
	return bookingModels.ToDomainKind(strings.ToLower(s))
}

func parseRange(startFlag, endFlag string) (time.Time, time.Time, error) {
	if startFlag == "" || endFlag == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: -start and -end", errMissingFlag)
	}
	start, err := businesstime.ParseFromAPI(startFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := businesstime.ParseFromAPI(endFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
