// Package form tracks the current edit target of a list and turns
// submitted field values into records.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

type State int

const (
	Adding State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "adding"
}

// Fields are the bound input values of a task or note form.
type Fields struct {
	Title       string
	DueDate     string
	Type        string
	Progress    string
	Description string
}

// Rules is the per-entity schema variant.
type Rules struct {
	DueRequired bool
	Types       []string
}

// Store is what the controller needs from an entity store.
type Store[T any] interface {
	Find(id string) (T, int, error)
	Save(item T, id string) ([]T, error)
}

// Binding maps between records and form fields.
type Binding[T any] interface {
	Defaults() Fields
	FromEntity(T) Fields
	Build(f Fields, existing *T) T
}

// Controller is the Adding/Editing state machine for one list.
type Controller[T any] struct {
	store    Store[T]
	binding  Binding[T]
	rules    Rules
	validate *validator.Validate
	state    State
	target   string
	fields   Fields
}

func New[T any](store Store[T], binding Binding[T], rules Rules) *Controller[T] {
	c := &Controller[T]{
		store:    store,
		binding:  binding,
		rules:    rules,
		validate: newValidator(),
	}
	c.OpenForAdd()
	return c
}

func (c *Controller[T]) State() State {
	return c.state
}

// Target is the ID being edited, empty while adding.
func (c *Controller[T]) Target() string {
	return c.target
}

func (c *Controller[T]) Fields() Fields {
	return c.fields
}

func (c *Controller[T]) OpenForAdd() {
	c.state = Adding
	c.target = ""
	c.fields = c.binding.Defaults()
}

// OpenForEdit loads the record with id into the fields.
func (c *Controller[T]) OpenForEdit(id string) error {
	item, _, err := c.store.Find(id)
	if err != nil {
		return err
	}
	c.state = Editing
	c.target = id
	c.fields = c.binding.FromEntity(item)
	return nil
}

// Cancel discards unsaved input.
func (c *Controller[T]) Cancel() {
	c.OpenForAdd()
}

// Submit validates f and inserts or replaces the record for the current
// target. On failure nothing is written and the state is kept.
func (c *Controller[T]) Submit(f Fields) (T, error) {
	var zero T
	c.fields = f
	if err := c.check(f); err != nil {
		return zero, err
	}

	var existing *T
	if c.state == Editing {
		item, _, err := c.store.Find(c.target)
		if err != nil {
			return zero, err
		}
		existing = &item
	}

	item := c.binding.Build(f, existing)
	items, err := c.store.Save(item, c.target)
	if err != nil {
		return zero, err
	}
	saved := item
	if c.state == Adding && len(items) > 0 {
		saved = items[len(items)-1]
	} else if got, _, err := c.store.Find(c.target); err == nil {
		saved = got
	}
	c.OpenForAdd()
	return saved, nil
}

type input struct {
	Title    string `form:"title" validate:"required"`
	DueDate  string `form:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Progress string `form:"progress" validate:"omitempty,oneof='Not Started' 'In Progress' 'Completed'"`
}

func (c *Controller[T]) check(f Fields) error {
	in := input{
		Title:    strings.TrimSpace(f.Title),
		DueDate:  strings.TrimSpace(f.DueDate),
		Progress: strings.TrimSpace(f.Progress),
	}
	verr := &ValidationError{}
	if err := c.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), message(fe))
		}
	}
	if c.rules.DueRequired && in.DueDate == "" {
		verr.add("dueDate", "Please select a due date")
	}
	if typ := strings.TrimSpace(f.Type); typ != "" && len(c.rules.Types) > 0 && !slices.Contains(c.rules.Types, typ) {
		verr.add("type", fmt.Sprintf("must be one of %s", strings.Join(c.rules.Types, ", ")))
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// RequireText validates a single free-text input such as a goal or habit.
func RequireText(field, text string) error {
	if err := newValidator().Var(strings.TrimSpace(text), "required"); err != nil {
		verr := &ValidationError{}
		verr.add(field, "Please enter a "+field)
		return verr
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please enter a " + fe.Field()
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), "' '", ", ")
	}
	return "is invalid"
}
