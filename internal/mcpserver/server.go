// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the Saka conversions as tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/saka/internal/dateservice"
	"github.com/starford/saka/internal/julian"
	"github.com/starford/saka/internal/saka"
)

const rulesURI = "saka://calendar-rules"

// Server wraps the MCP server with the date tools.
type Server struct {
	mcp *server.MCPServer
	svc *dateservice.Service
}

func dateArgs(prefix string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("year", mcp.Required(), mcp.Description(prefix+" year, four digits")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description(prefix+" month, 1-12")),
		mcp.WithNumber("day", mcp.Required(), mcp.Description(prefix+" day of month")),
	}
}

// New creates a new MCP server with all tools registered.
func New(svc *dateservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Saka",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("saka_today",
		mcp.WithDescription("Today's date in the Saka calendar, with its Gregorian equivalent."),
	), s.today)

	s.mcp.AddTool(mcp.NewTool("gregorian_to_saka", append([]mcp.ToolOption{
		mcp.WithDescription("Convert a Gregorian date to the Saka calendar."),
	}, dateArgs("Gregorian")...)...), s.gregorianToSaka)

	s.mcp.AddTool(mcp.NewTool("saka_to_gregorian", append([]mcp.ToolOption{
		mcp.WithDescription("Convert a Saka date to the Gregorian calendar. Also reports the Julian day, weekday and month length."),
	}, dateArgs("Saka")...)...), s.sakaToGregorian)

	s.mcp.AddTool(mcp.NewTool("julian_to_saka",
		mcp.WithDescription("Convert a Julian day number to the Saka calendar."),
		mcp.WithNumber("jd", mcp.Required(), mcp.Description("Julian day number; midnight is on the .5 boundary")),
	), s.julianToSaka)

	s.mcp.AddTool(mcp.NewTool("saka_month_calendar",
		mcp.WithDescription("Render a Saka month as a Sunday-first text calendar."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Saka year, four digits")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Saka month, 1-12")),
	), s.monthCalendar)

	s.mcp.AddTool(mcp.NewTool("saka_shift", append([]mcp.ToolOption{
		mcp.WithDescription("Add or subtract days, months or years from a Saka date. "+
			"Read the calendar rules resource for the clamping behaviour."),
		mcp.WithString("op", mcp.Required(), mcp.Enum(dateservice.OpAdd, dateservice.OpSubtract)),
		mcp.WithString("unit", mcp.Required(), mcp.Enum(dateservice.UnitDays, dateservice.UnitMonths, dateservice.UnitYears)),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Non-negative count")),
	}, dateArgs("Saka")...)...), s.shift)

	s.mcp.AddResource(
		mcp.NewResource(rulesURI, "Saka Calendar Rules",
			mcp.WithResourceDescription("Month lengths, new year rule and arithmetic conventions."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRulesResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func requireDate(req mcp.CallToolRequest) (y, m, d int, err error) {
	if y, err = req.RequireInt("year"); err != nil {
		return
	}
	if m, err = req.RequireInt("month"); err != nil {
		return
	}
	d, err = req.RequireInt("day")
	return
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) today(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	desc, err := s.svc.Describe(ctx, s.svc.Today(ctx))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc)
}

func (s *Server) gregorianToSaka(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	y, m, d, err := requireDate(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := s.svc.FromGregorian(ctx, julian.Date{Year: y, Month: m, Day: d})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc)
}

func (s *Server) sakaToGregorian(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	y, m, d, err := requireDate(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := s.svc.Describe(ctx, saka.Date{Year: y, Month: m, Day: d})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc)
}

func (s *Server) julianToSaka(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jd, err := req.RequireFloat("jd")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := s.svc.FromJulian(ctx, julian.Day(jd))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc)
}

func (s *Server) monthCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	y, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := req.RequireInt("month")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	g, err := s.svc.MonthGrid(ctx, y, m)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(g.String()), nil
}

func (s *Server) shift(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	y, m, d, err := requireDate(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op, err := req.RequireString("op")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := req.RequireString("unit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount, err := req.RequireInt("amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := s.svc.Shift(ctx, dateservice.ShiftRequest{
		Date:   saka.Date{Year: y, Month: m, Day: d},
		Op:     op,
		Unit:   unit,
		Amount: amount,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(desc)
}

func (s *Server) readRulesResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      rulesURI,
			MIMEType: "text/markdown",
			Text:     CalendarRules,
		},
	}, nil
}
