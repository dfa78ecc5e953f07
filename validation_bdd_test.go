package rtverify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"go.uber.org/multierr"
)

// ValidationBDDTestContext holds the state of one verification scenario
type ValidationBDDTestContext struct {
	builder     *AppBuilder
	lastError   error
	diagnostics []*Diagnostic
}

func (c *ValidationBDDTestContext) reset() {
	c.builder = NewAppBuilder()
	c.lastError = nil
	c.diagnostics = nil
}

func (c *ValidationBDDTestContext) iHaveAnEmptySpecification() error {
	c.reset()
	return nil
}

func (c *ValidationBDDTestContext) aResourceWithInitialValue(name string, value int) error {
	c.builder.AddResource(Resource{Ident: Name(name), Init: value})
	return nil
}

func (c *ValidationBDDTestContext) aLateResource(name string) error {
	c.builder.AddResource(Resource{Ident: Name(name), Late: true})
	return nil
}

func (c *ValidationBDDTestContext) aSoftwareTaskWithAccess(name string, priority int, mode, resource string) error {
	access, err := ParseAccess(mode)
	if err != nil {
		return err
	}
	c.builder.AddTask(Task{
		Ident:     Name(name),
		Kind:      KindSoftware,
		Priority:  PriorityOf(uint8(priority)),
		Resources: []ResourceRef{{Ident: Name(resource), Access: access}},
	})
	return nil
}

func (c *ValidationBDDTestContext) anInitTask(name string) error {
	c.builder.AddTask(Task{Ident: Name(name), Kind: KindInit})
	return nil
}

func (c *ValidationBDDTestContext) anInitTaskWithAccess(name, mode, resource string) error {
	access, err := ParseAccess(mode)
	if err != nil {
		return err
	}
	c.builder.AddTask(Task{
		Ident:     Name(name),
		Kind:      KindInit,
		Resources: []ResourceRef{{Ident: Name(resource), Access: access}},
	})
	return nil
}

func (c *ValidationBDDTestContext) theExternInterruptPool(name string) error {
	c.builder.AddExternInterrupt(Name(name))
	return nil
}

func (c *ValidationBDDTestContext) aHardwareTaskBoundTo(name string, priority int, irq string) error {
	c.builder.AddTask(Task{
		Ident:    Name(name),
		Kind:     KindHardware,
		Priority: PriorityOf(uint8(priority)),
		Binds:    []Ident{Name(irq)},
	})
	return nil
}

func (c *ValidationBDDTestContext) validate(aggregate bool) error {
	app, err := c.builder.Build()
	if err != nil {
		return fmt.Errorf("specification did not assemble: %w", err)
	}
	v := NewValidator(WithConfig(&Config{Aggregate: aggregate, EventSource: "bdd"}))
	c.lastError = v.Validate(context.Background(), app)
	c.diagnostics = nil
	for _, e := range multierr.Errors(c.lastError) {
		var d *Diagnostic
		if !errors.As(e, &d) {
			return fmt.Errorf("unexpected error type %T: %w", e, e)
		}
		c.diagnostics = append(c.diagnostics, d)
	}
	return nil
}

func (c *ValidationBDDTestContext) iValidateTheSpecification() error {
	return c.validate(false)
}

func (c *ValidationBDDTestContext) iValidateReportingEveryViolation() error {
	return c.validate(true)
}

func (c *ValidationBDDTestContext) theValidationShouldSucceed() error {
	if c.lastError != nil {
		return fmt.Errorf("expected success, got %w", c.lastError)
	}
	return nil
}

func (c *ValidationBDDTestContext) theValidationShouldFailWith(kind string) error {
	if len(c.diagnostics) != 1 {
		return fmt.Errorf("expected exactly one diagnostic, got %d (%v)", len(c.diagnostics), c.lastError)
	}
	if got := c.diagnostics[0].KindName(); got != kind {
		return fmt.Errorf("expected %s, got %s", kind, got)
	}
	return nil
}

func (c *ValidationBDDTestContext) theValidationShouldFailWithOn(kind, ident string) error {
	if err := c.theValidationShouldFailWith(kind); err != nil {
		return err
	}
	if got := c.diagnostics[0].Ident; got != ident {
		return fmt.Errorf("expected diagnostic on %q, got %q", ident, got)
	}
	return nil
}

func (c *ValidationBDDTestContext) theDiagnosticShouldNameTask(task string) error {
	if len(c.diagnostics) == 0 {
		return fmt.Errorf("no diagnostic reported")
	}
	if got := c.diagnostics[0].Task; got != task {
		return fmt.Errorf("expected task %q, got %q", task, got)
	}
	return nil
}

func (c *ValidationBDDTestContext) diagnosticsShouldBeReported(n int) error {
	if len(c.diagnostics) != n {
		return fmt.Errorf("expected %d diagnostics, got %d", n, len(c.diagnostics))
	}
	return nil
}

func (c *ValidationBDDTestContext) diagnosticShouldBe(index int, kind string) error {
	if index < 1 || index > len(c.diagnostics) {
		return fmt.Errorf("no diagnostic %d", index)
	}
	if got := c.diagnostics[index-1].KindName(); got != kind {
		return fmt.Errorf("diagnostic %d: expected %s, got %s", index, kind, got)
	}
	return nil
}

func TestValidationBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			testContext := &ValidationBDDTestContext{}

			// Background
			ctx.Step(`^I have an empty specification$`, testContext.iHaveAnEmptySpecification)

			// Declarations
			ctx.Step(`^a resource "([^"]*)" with initial value (\d+)$`, testContext.aResourceWithInitialValue)
			ctx.Step(`^a late resource "([^"]*)"$`, testContext.aLateResource)
			ctx.Step(`^a software task "([^"]*)" at priority (\d+) with (exclusive|shared) access to "([^"]*)"$`, testContext.aSoftwareTaskWithAccess)
			ctx.Step(`^an init task "([^"]*)"$`, testContext.anInitTask)
			ctx.Step(`^an init task "([^"]*)" with (exclusive|shared) access to "([^"]*)"$`, testContext.anInitTaskWithAccess)
			ctx.Step(`^the extern interrupt pool "([^"]*)"$`, testContext.theExternInterruptPool)
			ctx.Step(`^a hardware task "([^"]*)" at priority (\d+) bound to "([^"]*)"$`, testContext.aHardwareTaskBoundTo)

			// Validation
			ctx.Step(`^I validate the specification$`, testContext.iValidateTheSpecification)
			ctx.Step(`^I validate the specification reporting every violation$`, testContext.iValidateReportingEveryViolation)

			// Verdicts
			ctx.Step(`^the validation should succeed$`, testContext.theValidationShouldSucceed)
			ctx.Step(`^the validation should fail with "([^"]*)"$`, testContext.theValidationShouldFailWith)
			ctx.Step(`^the validation should fail with "([^"]*)" on "([^"]*)"$`, testContext.theValidationShouldFailWithOn)
			ctx.Step(`^the diagnostic should name task "([^"]*)"$`, testContext.theDiagnosticShouldNameTask)
			ctx.Step(`^(\d+) diagnostics should be reported$`, testContext.diagnosticsShouldBeReported)
			ctx.Step(`^diagnostic (\d+) should be "([^"]*)"$`, testContext.diagnosticShouldBe)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/validation.feature"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run BDD tests")
	}
}
