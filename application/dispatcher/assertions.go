package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"business_selector/domain/errs"
)

// FormFieldShouldContain - asserts the named field's value equals value
func (d *Dispatcher) FormFieldShouldContain(ctx context.Context, elementName, value string) error {
	actual, err := d.fieldValue(ctx, elementName)
	if err != nil {
		return err
	}
	if actual != value {
		return errs.Mismatch(elementName+" form field", value, actual)
	}
	return nil
}

// FormFieldShouldNotContain - asserts the named field's value differs from value
func (d *Dispatcher) FormFieldShouldNotContain(ctx context.Context, elementName, value string) error {
	actual, err := d.fieldValue(ctx, elementName)
	if err != nil {
		return err
	}
	if actual == value {
		return errs.Mismatch(elementName+" form field", "anything but "+value, actual)
	}
	return nil
}

func (d *Dispatcher) fieldValue(ctx context.Context, elementName string) (string, error) {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return "", err
	}

	value, err := el.Value(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read value of %s: %w", elementName, err)
	}
	return value, nil
}

// ShouldContainText - asserts the named element's text contains text
func (d *Dispatcher) ShouldContainText(ctx context.Context, elementName, text string) error {
	actual, err := d.elementText(ctx, elementName)
	if err != nil {
		return err
	}
	if !strings.Contains(actual, text) {
		return errs.Mismatch(fmt.Sprintf("'%s' not found in %s", text, elementName), text, actual)
	}
	return nil
}

// ShouldNotContainText - asserts the named element's text does not contain text
func (d *Dispatcher) ShouldNotContainText(ctx context.Context, elementName, text string) error {
	actual, err := d.elementText(ctx, elementName)
	if err != nil {
		return err
	}
	if strings.Contains(actual, text) {
		return errs.Mismatch(fmt.Sprintf("'%s' found in %s", text, elementName), "text without "+text, actual)
	}
	return nil
}

func (d *Dispatcher) elementText(ctx context.Context, elementName string) (string, error) {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return "", err
	}

	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", elementName, err)
	}
	return text, nil
}

// ShouldBeChecked - asserts the named checkbox is ticked
func (d *Dispatcher) ShouldBeChecked(ctx context.Context, elementName string) error {
	return d.expectChecked(ctx, elementName, true)
}

// ShouldNotBeChecked - asserts the named checkbox is clear
func (d *Dispatcher) ShouldNotBeChecked(ctx context.Context, elementName string) error {
	return d.expectChecked(ctx, elementName, false)
}

func (d *Dispatcher) expectChecked(ctx context.Context, elementName string, want bool) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	checked, err := el.IsChecked(ctx)
	if err != nil {
		return fmt.Errorf("failed to read state of %s: %w", elementName, err)
	}
	if checked != want {
		return errs.Mismatch(elementName+" checked state", checkedState(want), checkedState(checked))
	}
	return nil
}

func checkedState(checked bool) string {
	if checked {
		return "checked"
	}
	return "unchecked"
}

// ShouldSeeComponent - asserts the named component is on the page
func (d *Dispatcher) ShouldSeeComponent(ctx context.Context, elementName string) error {
	_, err := d.locator.Locate(ctx, elementName, nil)
	return err
}

// ShouldNotSeeComponent - asserts the named component is absent or not visible
func (d *Dispatcher) ShouldNotSeeComponent(ctx context.Context, elementName string) error {
	presence, err := d.locator.Probe(ctx, elementName, nil)
	if err != nil {
		return err
	}
	if !presence.Found {
		return nil
	}

	visible, err := presence.Element.IsVisible(ctx)
	if err != nil {
		return fmt.Errorf("failed to check visibility of %s: %w", elementName, err)
	}
	if visible {
		return errs.Mismatch("Component "+elementName+" found", "absent or hidden", "visible")
	}
	return nil
}

// ShouldContainElement - asserts inner is found within outer
func (d *Dispatcher) ShouldContainElement(ctx context.Context, outer, inner string) error {
	scope, err := d.locator.Locate(ctx, outer, nil)
	if err != nil {
		return err
	}

	_, err = d.locator.Locate(ctx, inner, scope)
	return err
}

// ShouldNotContainElement - asserts inner has no match within outer
func (d *Dispatcher) ShouldNotContainElement(ctx context.Context, outer, inner string) error {
	scope, err := d.locator.Locate(ctx, outer, nil)
	if err != nil {
		return err
	}

	presence, err := d.locator.Probe(ctx, inner, scope)
	if err != nil {
		return err
	}
	if presence.Found {
		return errs.Mismatch(fmt.Sprintf("Element %s found in %s", inner, outer), "absent", "present")
	}
	return nil
}
