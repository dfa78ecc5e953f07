package rtverify

import (
	"go.uber.org/multierr"
)

// reportFunc receives a diagnostic and returns false to stop the scan.
type reportFunc func(*Diagnostic) bool

// check is one static pass over the App.
type check struct {
	name string
	run  func(app *App, report reportFunc)
}

// checks run in this order; the first failing check decides the verdict.
var checks = []check{
	{name: "declared-resources", run: checkDeclaredResources},
	{name: "access-modes", run: checkAccessModes},
	{name: "init-accesses", run: checkInitAccesses},
	{name: "late-resources", run: checkLateResources},
	{name: "dispatcher-interrupts", run: checkDispatcherInterrupts},
}

// Validate proves that the declared sharing pattern of app admits a sound
// ceiling assignment. It returns nil or the first *Diagnostic found.
//
// Task and resource names are assumed unique; NewApp guarantees it.
func Validate(app *App) error {
	if app == nil {
		return ErrAppNil
	}
	for _, c := range checks {
		if d := runCheck(c, app, true); len(d) > 0 {
			return d[0]
		}
	}
	return nil
}

// ValidateAll runs every check to completion and returns every diagnostic,
// combined with multierr, in check order. multierr.Errors recovers the list.
func ValidateAll(app *App) error {
	if app == nil {
		return ErrAppNil
	}
	var err error
	for _, c := range checks {
		for _, d := range runCheck(c, app, false) {
			err = multierr.Append(err, d)
		}
	}
	return err
}

func runCheck(c check, app *App, firstOnly bool) []*Diagnostic {
	var out []*Diagnostic
	c.run(app, func(d *Diagnostic) bool {
		out = append(out, d)
		return !firstOnly
	})
	return out
}

// checkDeclaredResources rejects accesses to resources that were never declared.
func checkDeclaredResources(app *App, report reportFunc) {
	for _, site := range app.ResourceAccesses() {
		if _, ok := app.resources[site.Resource.Name]; ok {
			continue
		}
		if !report(diagnose(ErrUndeclaredResource, site.Resource, site.Task)) {
			return
		}
	}
}

// checkAccessModes rejects shared accesses to resources that some task with
// a priority accesses exclusively. Init has no priority and never locks, so
// its exclusive accesses do not count.
func checkAccessModes(app *App, report reportFunc) {
	exclusive := exclusiveAccesses(app)
	for _, site := range app.ResourceAccesses() {
		if !site.Access.IsShared() {
			continue
		}
		if _, ok := exclusive[site.Resource.Name]; !ok {
			continue
		}
		d := diagnose(ErrConflictingAccessMode, site.Resource, site.Task)
		d.Hint = "use `x` instead of `&x`"
		if !report(d) {
			return
		}
	}
}

// checkInitAccesses requires init accesses to be exclusive and to non-late resources.
func checkInitAccesses(app *App, report reportFunc) {
	if app.init == nil {
		return
	}
	for _, ref := range app.init.Resources {
		if r, ok := app.resources[ref.Name]; ok && r.Late {
			if !report(diagnose(ErrLateResourceInInit, ref.Ident, app.init.Name)) {
				return
			}
			continue
		}
		if ref.Access.IsShared() {
			d := diagnose(ErrSharedAccessInInit, ref.Ident, app.init.Name)
			d.Hint = "use `x` instead of `&x`"
			if !report(d) {
				return
			}
		}
	}
}

// checkLateResources requires an init task whenever late resources exist.
func checkLateResources(app *App, report reportFunc) {
	if app.init != nil {
		return
	}
	late := app.LateResources()
	if len(late) == 0 {
		return
	}
	d := diagnose(ErrMissingInitForLateResources, Ident{Span: late[0].Span}, "")
	report(d)
}

// checkDispatcherInterrupts rejects hardware tasks bound to dispatcher interrupts.
func checkDispatcherInterrupts(app *App, report reportFunc) {
	for _, t := range app.hardware {
		for _, bind := range t.Binds {
			if !app.IsDispatcher(bind.Name) {
				continue
			}
			if !report(diagnose(ErrDispatcherInterruptReused, bind, t.Name)) {
				return
			}
		}
	}
}

// exclusiveAccesses is the set of resources accessed exclusively by a task
// that has a concrete priority.
func exclusiveAccesses(app *App) map[string]struct{} {
	out := make(map[string]struct{})
	for _, site := range app.ResourceAccesses() {
		if site.Priority.IsSet() && site.Access.IsExclusive() {
			out[site.Resource.Name] = struct{}{}
		}
	}
	return out
}
