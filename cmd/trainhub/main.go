package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/config"
	"github.com/yigit/trainhub/internal/pages"
	"github.com/yigit/trainhub/internal/session"
	"github.com/yigit/trainhub/internal/table"
	"github.com/yigit/trainhub/internal/viewmodel"
)

// readPassword reads a password without echo; replaced in tests
var readPassword = func() (string, error) {
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	return string(b), err
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:                      "trainhub",
		Usage:                     "console client for the training center",
		Reader:                    in,
		Writer:                    out,
		ErrWriter:                 errOut,
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"TRAINHUB_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log requests and cache activity",
			},
		},
		Commands: append([]*cli.Command{
			{
				Name:  "login",
				Usage: "sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "prompted when omitted"},
				},
				Action: login,
			},
			{
				Name:   "logout",
				Usage:  "sign out",
				Action: logout,
			},
			{
				Name:   "whoami",
				Usage:  "show the signed-in user",
				Action: whoami,
			},
			{
				Name:   "nav",
				Usage:  "list the pages available to the signed-in user",
				Action: nav,
			},
			{
				Name:   "dashboard",
				Usage:  "show the overview figures",
				Action: dashboard,
			},
		}, resourceCommands()...),
	}
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "trainhub:", err)
		os.Exit(1)
	}
}

func login(c *cli.Context) error {
	con, err := openConsole(c)
	if err != nil {
		return err
	}

	username := strings.TrimSpace(c.String("username"))
	if username == "" {
		fmt.Fprint(con.out, "Username: ")
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	password := c.String("password")
	if password == "" {
		fmt.Fprint(con.out, "Password: ")
		password, err = readPassword()
		fmt.Fprintln(con.out)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	user, err := con.session.Login(c.Context, username, password)
	if err != nil {
		return err
	}
	con.saveCookies()

	home, err := pages.Resolve(con.session, string(session.RouteLogin))
	if err != nil {
		return err
	}
	fmt.Fprintf(con.out, "Signed in as %s (%s)\n", user.DisplayName(), user.Role.Label())
	fmt.Fprintf(con.out, "Home: %s\n", pages.Title(home))
	return nil
}

func logout(c *cli.Context) error {
	con, err := openConsole(c)
	if err != nil {
		return err
	}
	con.session.Logout(c.Context)
	con.forgetCookies()
	fmt.Fprintln(con.out, "Signed out")
	return nil
}

func whoami(c *cli.Context) error {
	con, err := openConsole(c)
	if err != nil {
		return err
	}
	user := con.session.User()
	if user == nil {
		fmt.Fprintln(con.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(con.out, "%s\t%s\t%s\n", user.Username, user.DisplayName(), user.Role.Label())
	return nil
}

func nav(c *cli.Context) error {
	con, err := openConsole(c)
	if err != nil {
		return err
	}
	if err := con.require(session.RouteDashboard); err != nil {
		return err
	}
	for _, e := range pages.Navigation(con.session.Role()) {
		fmt.Fprintf(con.out, "%-14s %s\n", e.Title, e.Route)
	}
	return nil
}

var recentCourseColumns = []table.Column[models.Course]{
	{Key: "code", Header: "Code"},
	{Key: "titre", Header: "Title"},
	{Key: "formateur", Header: "Trainer", Render: pages.TrainerCell},
}

func dashboard(c *cli.Context) error {
	con, err := openConsole(c)
	if err != nil {
		return err
	}
	if err := con.require(session.RouteDashboard); err != nil {
		return err
	}

	user := con.session.User()
	d := viewmodel.LoadDashboard(c.Context, con.cache, user.Role, time.Now())

	w := con.out
	fmt.Fprintf(w, "%s, %s\n\n", d.Greeting, user.DisplayName())
	if d.ShowStudents {
		fmt.Fprintf(w, "Students:       %d\n", d.Students)
	}
	if d.ShowTrainers {
		fmt.Fprintf(w, "Trainers:       %d\n", d.Trainers)
	}
	fmt.Fprintf(w, "Courses:        %d\n", d.Courses)
	fmt.Fprintf(w, "Registrations:  %d (%d active)\n", d.Registrations, d.ActiveRegistrations)
	fmt.Fprintf(w, "Grades:         %d (average %s)\n\n", d.Grades, d.AverageGrade())

	view := table.Build(recentCourseColumns, d.RecentCourses, table.Options{EmptyMessage: pages.EmptyCourses})
	if err := view.WriteText(w); err != nil {
		return err
	}

	for kind, err := range d.Errors {
		fmt.Fprintf(c.App.ErrWriter, "warning: %s may be out of date: %v\n", kind, err)
	}
	return nil
}
