// Command admin is the terminal admin panel of the ludoteca service.
// It talks to the admin REST API with a pre-issued admin JWT.
//
//	LUDOTECA_API_URL=http://localhost:8080 LUDOTECA_ADMIN_TOKEN=... admin bookings -kind birthday
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/m04kA/ludoteca-service/internal/integrations/ludotecaapi"
	"github.com/m04kA/ludoteca-service/pkg/logger"
)

const (
	defaultAPIURL  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = []command{
	{"bookings", "grouped bookings of a kind: -kind K [-month YYYY-MM] [-page WEEK:N]", runBookings},
	{"day", "bookings of one day: -kind K -date YYYY-MM-DD", runDay},
	{"status", "change booking status: -kind K -id N -to STATUS [-month YYYY-MM]", runStatus},
	{"edit", "edit booking fields: -kind K -id N [-guests N] [-comment S] ... [-month YYYY-MM]", runEdit},
	{"attendance", "mark attendance: -kind K -id N -value ATTENDED|NO_SHOW|UNKNOWN [-month YYYY-MM]", runAttendance},
	{"delete-booking", "delete a booking: -kind K -id N [-month YYYY-MM]", runDeleteBooking},
	{"slots", "slot calendar of a month: -kind K [-month YYYY-MM]", runSlots},
	{"create-slot", "create a slot: -kind K -start T -end T [-capacity N] [-status OPEN|CLOSED]", runCreateSlot},
	{"update-slot", "update a slot: -kind K -id N [-start T] [-end T] [-capacity N] [-status S]", runUpdateSlot},
	{"delete-slot", "delete a slot: -kind K -id N", runDeleteSlot},
}

func main() {
	// .env необязателен
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := findCommand(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	log, err := logger.New(os.Getenv("LUDOTECA_ADMIN_LOG"), envOr("LUDOTECA_ADMIN_LOG_LEVEL", "warn"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	timeout := defaultTimeout
	if v := os.Getenv("LUDOTECA_TIMEOUT"); v != "" {
		if timeout, err = time.ParseDuration(v); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LUDOTECA_TIMEOUT: %v\n", err)
			os.Exit(2)
		}
	}

	client := ludotecaapi.NewClient(envOr("LUDOTECA_API_URL", defaultAPIURL), os.Getenv("LUDOTECA_ADMIN_TOKEN"), timeout, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{client: client, out: os.Stdout, log: log}
	if err := cmd.run(ctx, a, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.name, err)
		os.Exit(1)
	}
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <command> [flags]")
	fmt.Fprintln(os.Stderr)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-15s %s\n", c.name, c.usage)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
