package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/saka/internal"
	"github.com/starford/saka/internal/apperr"
	"github.com/starford/saka/internal/dateservice"
	"github.com/starford/saka/internal/julian"
	"github.com/starford/saka/internal/saka"
	pkgconfig "github.com/starford/saka/pkg/config"
)

const defaultConfigPath = "config/config.yaml"

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "saka",
		Usage:   "Indian national (Saka) calendar converter, date arithmetic and month calendars",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigPath,
				Value:       defaultConfigPath,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API with date rollover events",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the conversion tools over MCP stdio",
				Action: serveMCP,
			},
			{
				Name:   "today",
				Usage:  "Print today's Saka date",
				Action: today,
			},
			{
				Name:      "to-gregorian",
				Usage:     "Convert a Saka date to Gregorian",
				ArgsUsage: "YEAR MONTH DAY",
				Action:    toGregorian,
			},
			{
				Name:      "from-gregorian",
				Usage:     "Convert a Gregorian date to Saka",
				ArgsUsage: "YEAR MONTH DAY",
				Action:    fromGregorian,
			},
			{
				Name:      "to-julian",
				Usage:     "Print the Julian day of a Saka date",
				ArgsUsage: "YEAR MONTH DAY",
				Action:    toJulian,
			},
			{
				Name:      "from-julian",
				Usage:     "Convert a Julian day to Saka",
				ArgsUsage: "JD",
				Action:    fromJulian,
			},
			{
				Name:      "cal",
				Usage:     "Print a Saka month calendar (current month by default)",
				ArgsUsage: "[YEAR MONTH]",
				Action:    calendar,
			},
			shiftCommand(dateservice.OpAdd, "Add days, months or years to a Saka date"),
			shiftCommand(dateservice.OpSubtract, "Subtract days, months or years from a Saka date"),
			{
				Name:      "weekday",
				Usage:     "Print the weekday of a Saka date",
				ArgsUsage: "YEAR MONTH DAY",
				Action:    weekday,
			},
			{
				Name:      "days-in-month",
				Usage:     "Print the length of a Saka month",
				ArgsUsage: "YEAR MONTH",
				Action:    daysInMonth,
			},
			{
				Name:      "month-name",
				Usage:     "Print the name of a Saka month",
				ArgsUsage: "MONTH",
				Action:    monthName,
			},
		},
	}
}

func shiftCommand(op, usage string) *cli.Command {
	return &cli.Command{
		Name:      op,
		Usage:     usage,
		ArgsUsage: "YEAR MONTH DAY AMOUNT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "unit",
				Aliases: []string{"u"},
				Usage:   "days, months or years",
				Value:   dateservice.UnitDays,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := intArgs(cmd, "year", "month", "day", "amount")
			if err != nil {
				return err
			}
			svc, err := loadService(cmd)
			if err != nil {
				return err
			}
			desc, err := svc.Shift(ctx, dateservice.ShiftRequest{
				Date:   saka.Date{Year: args[0], Month: args[1], Day: args[2]},
				Op:     op,
				Unit:   cmd.String("unit"),
				Amount: args[3],
			})
			if err != nil {
				return err
			}
			return output(cmd, desc.Formatted)
		},
	}
}

func loadConfig(cmd *cli.Command) (*internal.Config, string, error) {
	path := cmd.Root().String("config")
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(path, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		path = ""
	}
	return cfg, path, nil
}

func loadService(cmd *cli.Command) (*dateservice.Service, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return internal.NewService(cfg)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}
	if path != "" {
		opts = append(opts, internal.WithConfigPath(path))
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

// intArgs parses exactly len(names) positional integer arguments. An
// argument named "month" is a Saka month and may also be given by name.
func intArgs(cmd *cli.Command, names ...string) ([]int, error) {
	if cmd.NArg() != len(names) {
		return nil, fmt.Errorf("%w: expected %s", apperr.ErrInvalidArgument, strings.ToUpper(strings.Join(names, " ")))
	}
	out := make([]int, len(names))
	for i, name := range names {
		raw := cmd.Args().Get(i)
		if name == "month" {
			m, err := saka.ParseMonth(raw)
			if err != nil {
				return nil, err
			}
			out[i] = m
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &apperr.FieldError{Field: name, Value: raw, Err: apperr.ErrInvalidArgument}
		}
		out[i] = n
	}
	return out, nil
}

func sakaArg(cmd *cli.Command) (saka.Date, error) {
	args, err := intArgs(cmd, "year", "month", "day")
	if err != nil {
		return saka.Date{}, err
	}
	return saka.New(args[0], args[1], args[2])
}

func output(cmd *cli.Command, a ...any) error {
	_, err := fmt.Foutput(cmd.Root().Writer, a...)
	return err
}

func today(ctx context.Context, cmd *cli.Command) error {
	svc, err := loadService(cmd)
	if err != nil {
		return err
	}
	return output(cmd, svc.Today(ctx))
}

func toGregorian(_ context.Context, cmd *cli.Command) error {
	d, err := sakaArg(cmd)
	if err != nil {
		return err
	}
	return output(cmd, d.Gregorian())
}

func fromGregorian(ctx context.Context, cmd *cli.Command) error {
	args, err := intArgs(cmd, "year", "gregorian-month", "day")
	if err != nil {
		return err
	}
	svc, err := loadService(cmd)
	if err != nil {
		return err
	}
	desc, err := svc.FromGregorian(ctx, julian.Date{Year: args[0], Month: args[1], Day: args[2]})
	if err != nil {
		return err
	}
	return output(cmd, desc.Formatted)
}

func toJulian(_ context.Context, cmd *cli.Command) error {
	d, err := sakaArg(cmd)
	if err != nil {
		return err
	}
	return output(cmd, strconv.FormatFloat(float64(d.JulianDay()), 'f', 1, 64))
}

func fromJulian(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: expected JD", apperr.ErrInvalidArgument)
	}
	raw := cmd.Args().First()
	jd, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &apperr.FieldError{Field: "jd", Value: raw, Err: apperr.ErrInvalidArgument}
	}
	svc, err := loadService(cmd)
	if err != nil {
		return err
	}
	desc, err := svc.FromJulian(ctx, julian.Day(jd))
	if err != nil {
		return err
	}
	return output(cmd, desc.Formatted)
}

func calendar(ctx context.Context, cmd *cli.Command) error {
	var year, month int
	switch cmd.NArg() {
	case 0:
		svc, err := loadService(cmd)
		if err != nil {
			return err
		}
		t := svc.Today(ctx)
		year, month = t.Year, t.Month
	default:
		args, err := intArgs(cmd, "year", "month")
		if err != nil {
			return err
		}
		year, month = args[0], args[1]
	}
	text, err := saka.RenderMonthGrid(year, month)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.Root().Writer, text)
	return err
}

func weekday(_ context.Context, cmd *cli.Command) error {
	d, err := sakaArg(cmd)
	if err != nil {
		return err
	}
	return output(cmd, d.Weekday())
}

func daysInMonth(_ context.Context, cmd *cli.Command) error {
	args, err := intArgs(cmd, "year", "month")
	if err != nil {
		return err
	}
	n, err := saka.DaysInMonth(args[0], args[1])
	if err != nil {
		return err
	}
	return output(cmd, n)
}

func monthName(_ context.Context, cmd *cli.Command) error {
	args, err := intArgs(cmd, "month")
	if err != nil {
		return err
	}
	name, err := saka.MonthName(args[0])
	if err != nil {
		return err
	}
	return output(cmd, name)
}
