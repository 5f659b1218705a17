package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yigit/trainhub/internal/app/models"
	"github.com/yigit/trainhub/internal/app/models/dto"
	"github.com/yigit/trainhub/internal/cache"
	"github.com/yigit/trainhub/internal/pages"
	"github.com/yigit/trainhub/internal/pkg/apperrors"
	"github.com/yigit/trainhub/internal/pkg/formfields"
	"github.com/yigit/trainhub/internal/session"
	"github.com/yigit/trainhub/internal/table"
	"github.com/yigit/trainhub/internal/viewmodel"
)

// resource describes the command group of one list page
type resource[T, F any] struct {
	name    string
	usage   string
	route   session.Route
	empty   string
	page    func(p *viewmodel.Pages) *viewmodel.List[T, F]
	columns func(g pages.Gate) []table.Column[T]

	// noEdit drops the edit command
	noEdit bool

	// deleteVerb names the delete command; canDelete narrows it per row
	deleteVerb string
	canDelete  func(s *session.Store, item T) bool
}

func setFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "set",
		Aliases: []string{"s"},
		Usage:   "form field as `key=value`, repeatable",
	}
}

func (r resource[T, F]) command() *cli.Command {
	subcommands := []*cli.Command{
		{
			Name:  "list",
			Usage: "list " + r.name,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "case-insensitive filter"},
			},
			Action: r.list,
		},
		{
			Name:   "add",
			Usage:  "create a record",
			Flags:  []cli.Flag{setFlag()},
			Action: r.add,
		},
	}

	if !r.noEdit {
		subcommands = append(subcommands, &cli.Command{
			Name:      "edit",
			Usage:     "update a record",
			ArgsUsage: "[--set key=value...] ID",
			Flags:     []cli.Flag{setFlag()},
			Action:    r.edit,
		})
	}

	verb := r.deleteVerb
	if verb == "" {
		verb = "delete"
	}
	subcommands = append(subcommands, &cli.Command{
		Name:      verb,
		Usage:     verb + " a record",
		ArgsUsage: "ID",
		Action:    r.remove,
	})

	return &cli.Command{
		Name:        r.name,
		Usage:       r.usage,
		Subcommands: subcommands,
	}
}

// open prepares the page after checking the route
func (r resource[T, F]) open(c *cli.Context) (*console, *viewmodel.List[T, F], error) {
	con, err := openConsole(c)
	if err != nil {
		return nil, nil, err
	}
	if err := con.require(r.route); err != nil {
		return nil, nil, err
	}
	return con, r.page(con.pages), nil
}

// load waits for the collection. Stale data is shown with a warning.
func (r resource[T, F]) load(c *cli.Context, con *console, page *viewmodel.List[T, F]) error {
	_, err := cache.Load[T](c.Context, con.cache, page.Kind())
	if err == nil {
		return nil
	}
	if page.Snapshot().Data == nil {
		return fmt.Errorf("failed to load %s: %w", r.name, err)
	}
	fmt.Fprintf(c.App.ErrWriter, "warning: showing cached %s: %v\n", r.name, err)
	return nil
}

func (r resource[T, F]) list(c *cli.Context) error {
	con, page, err := r.open(c)
	if err != nil {
		return err
	}
	if err := r.load(c, con, page); err != nil {
		return err
	}

	page.SetSearch(c.String("search"))
	return pages.ListView(page, r.columns(con.session), r.empty).WriteText(con.out)
}

func (r resource[T, F]) add(c *cli.Context) error {
	con, page, err := r.open(c)
	if err != nil {
		return err
	}
	if !con.session.Capabilities(r.route).Create {
		return pages.ErrForbidden
	}

	page.OpenCreate()
	return r.submit(c, con, page)
}

func (r resource[T, F]) edit(c *cli.Context) error {
	con, page, err := r.open(c)
	if err != nil {
		return err
	}
	if !con.session.Capabilities(r.route).Edit {
		return pages.ErrForbidden
	}

	item, err := r.find(c, con, page)
	if err != nil {
		return err
	}
	if err := page.OpenEdit(item); err != nil {
		return err
	}
	return r.submit(c, con, page)
}

func (r resource[T, F]) remove(c *cli.Context) error {
	con, page, err := r.open(c)
	if err != nil {
		return err
	}

	item, err := r.find(c, con, page)
	if err != nil {
		return err
	}
	allowed := con.session.Capabilities(r.route).Delete
	if r.canDelete != nil {
		allowed = r.canDelete(con.session, item)
	}
	if !allowed {
		return pages.ErrForbidden
	}

	page.ConfirmDelete(item)
	err = page.ExecuteDelete(c.Context)
	con.flush()
	return err
}

func (r resource[T, F]) submit(c *cli.Context, con *console, page *viewmodel.List[T, F]) error {
	values, err := formfields.ParseAssignments(c.StringSlice("set"))
	if err != nil {
		return err
	}
	if err := formfields.Apply(page.Form(), values); err != nil {
		return err
	}

	err = page.Submit(c.Context)
	con.flush()
	return describe(err)
}

// find loads the collection and returns the record named by the first argument
func (r resource[T, F]) find(c *cli.Context, con *console, page *viewmodel.List[T, F]) (T, error) {
	var zero T
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return zero, apperrors.NewValidationError(fmt.Sprintf("expected a record ID, got %q", c.Args().First()))
	}
	if err := r.load(c, con, page); err != nil {
		return zero, err
	}

	item, ok := page.Find(id)
	if !ok {
		return zero, apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found", page.Noun(), id))
	}
	return item, nil
}

func resourceCommands() []*cli.Command {
	return []*cli.Command{
		resource[models.Student, dto.StudentForm]{
			name:    "students",
			usage:   "manage students",
			route:   session.RouteStudents,
			empty:   pages.EmptyStudents,
			page:    func(p *viewmodel.Pages) *viewmodel.Students { return p.Students },
			columns: pages.StudentColumns,
		}.command(),
		resource[models.Trainer, dto.TrainerForm]{
			name:    "trainers",
			usage:   "manage trainers",
			route:   session.RouteTrainers,
			empty:   pages.EmptyTrainers,
			page:    func(p *viewmodel.Pages) *viewmodel.Trainers { return p.Trainers },
			columns: pages.TrainerColumns,
		}.command(),
		resource[models.Course, dto.CourseForm]{
			name:    "courses",
			usage:   "manage the course catalogue",
			route:   session.RouteCourses,
			empty:   pages.EmptyCourses,
			page:    func(p *viewmodel.Pages) *viewmodel.Courses { return p.Courses },
			columns: pages.CourseColumns,
		}.command(),
		resource[models.Registration, dto.RegistrationForm]{
			name:       "registrations",
			usage:      "enrol students and cancel registrations",
			route:      session.RouteRegistrations,
			empty:      pages.EmptyRegistrations,
			page:       func(p *viewmodel.Pages) *viewmodel.Registrations { return p.Registrations },
			columns:    pages.RegistrationColumns,
			noEdit:     true,
			deleteVerb: "cancel",
			canDelete: func(s *session.Store, reg models.Registration) bool {
				return s.CanDeleteRegistration(reg)
			},
		}.command(),
		resource[models.Grade, dto.GradeForm]{
			name:    "grades",
			usage:   "assign and review grades",
			route:   session.RouteGrades,
			empty:   pages.EmptyGrades,
			page:    func(p *viewmodel.Pages) *viewmodel.Grades { return p.Grades },
			columns: pages.GradeColumns,
		}.command(),
	}
}
