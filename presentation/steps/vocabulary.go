// Package steps maps the natural-language step phrases onto dispatcher handlers.
package steps

import (
	"context"
	"fmt"
	"regexp"

	"business_selector/application/dispatcher"
	"business_selector/domain/entities"

	"github.com/cucumber/godog"
)

// Step is one phrase of the vocabulary.
// Handler is a func(context.Context, ...string) error with one string per capture group.
type Step struct {
	Pattern *regexp.Regexp
	Handler interface{}
}

// Vocabulary - returns every step phrase bound to d
func Vocabulary(d *dispatcher.Dispatcher) []Step {
	waitFor := func(ctx context.Context, elementName, dis string) error {
		return d.WaitForComponent(ctx, elementName, entities.VisibilityFromPhrase(dis))
	}

	return []Step{
		step(`^I go to the page "([^"]*)"$`, d.GoToPage),
		step(`^I follow the link "([^"]*)"$`, d.FollowLink),
		step(`^I click the "([^"]*)"$`, d.FollowLink),
		step(`^I fill in the "([^"]*)" field with "([^"]*)"$`, d.FillField),
		step(`^I select "([^"]*)" from the "([^"]*)" selector$`, d.SelectOption),
		step(`^I additionally select "([^"]*)" from the "([^"]*)" selector$`, d.AdditionallySelectOption),
		step(`^I check the "([^"]*)" checkbox$`, d.CheckCheckbox),
		step(`^I uncheck the "([^"]*)" checkbox$`, d.UncheckCheckbox),
		step(`^the "([^"]*)" form field should contain "([^"]*)"$`, d.FormFieldShouldContain),
		step(`^the "([^"]*)" form field should not contain "([^"]*)"$`, d.FormFieldShouldNotContain),
		step(`^I should see "([^"]*)" on the page$`, d.ShouldSeeOnPage),
		step(`^the "([^"]*)" should be checked$`, d.ShouldBeChecked),
		step(`^the "([^"]*)" should not be checked$`, d.ShouldNotBeChecked),
		step(`^I attach "([^"]*)" to "([^"]*)"$`, d.AttachFile),
		step(`^I hover over "([^"]*)"$`, d.HoverOver),
		step(`^I focus on the "([^"]*)" iframe$`, d.FocusIFrame),
		step(`^I refocus on the primary page$`, d.RefocusPrimaryPage),
		step(`^I should see "([^"]*)" component$`, d.ShouldSeeComponent),
		step(`^I should not see "([^"]*)" component$`, d.ShouldNotSeeComponent),
		step(`^I wait for the "([^"]*)" component to (dis|)appear$`, waitFor),
		step(`^the "([^"]*)" should contain "([^"]*)"$`, d.ShouldContainText),
		step(`^the "([^"]*)" should not contain "([^"]*)"$`, d.ShouldNotContainText),
		step(`^"([^"]*)" should contain "([^"]*)"$`, d.ShouldContainElement),
		step(`^"([^"]*)" should not contain "([^"]*)"$`, d.ShouldNotContainElement),
	}
}

func step(pattern string, handler interface{}) Step {
	return Step{Pattern: regexp.MustCompile(pattern), Handler: handler}
}

// Register - binds the vocabulary to a godog scenario
func Register(sc *godog.ScenarioContext, d *dispatcher.Dispatcher) {
	for _, s := range Vocabulary(d) {
		sc.Step(s.Pattern, s.Handler)
	}
}

// Match - finds the step whose pattern matches line and returns its captured arguments
func Match(vocabulary []Step, line string) (Step, []string, bool) {
	for _, s := range vocabulary {
		if m := s.Pattern.FindStringSubmatch(line); m != nil {
			return s, m[1:], true
		}
	}
	return Step{}, nil, false
}

// Invoke - calls a step handler with captured arguments
func Invoke(ctx context.Context, s Step, args []string) error {
	switch h := s.Handler.(type) {
	case func(context.Context) error:
		if len(args) == 0 {
			return h(ctx)
		}
	case func(context.Context, string) error:
		if len(args) == 1 {
			return h(ctx, args[0])
		}
	case func(context.Context, string, string) error:
		if len(args) == 2 {
			return h(ctx, args[0], args[1])
		}
	default:
		return fmt.Errorf("unsupported handler %T for %s", s.Handler, s.Pattern)
	}
	return fmt.Errorf("step %s takes a different number of arguments than %d", s.Pattern, len(args))
}
