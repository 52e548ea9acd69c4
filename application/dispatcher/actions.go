package dispatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"business_selector/domain/errs"
)

// FollowLink - clicks the named element
func (d *Dispatcher) FollowLink(ctx context.Context, elementName string) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	d.logger.Infof("Clicking on: %s", elementName)
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", elementName, err)
	}
	return nil
}

// FillField - replaces the value of the named field
func (d *Dispatcher) FillField(ctx context.Context, elementName, value string) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	d.logger.Infof("Filling %s with %q", elementName, value)
	if err := el.SetValue(ctx, value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", elementName, err)
	}
	return nil
}

// SelectOption - selects value in the named selector, replacing the current selection
func (d *Dispatcher) SelectOption(ctx context.Context, value, elementName string) error {
	return d.selectOption(ctx, value, elementName, false)
}

// AdditionallySelectOption - adds value to the selection of a multi-select
func (d *Dispatcher) AdditionallySelectOption(ctx context.Context, value, elementName string) error {
	return d.selectOption(ctx, value, elementName, true)
}

func (d *Dispatcher) selectOption(ctx context.Context, value, elementName string, additive bool) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	d.logger.Infof("Selecting %q from %s", value, elementName)
	if err := el.SelectOption(ctx, value, additive); err != nil {
		return fmt.Errorf("failed to select %q from %s: %w", value, elementName, err)
	}
	return nil
}

// CheckCheckbox - ticks the named checkbox unless it already is
func (d *Dispatcher) CheckCheckbox(ctx context.Context, elementName string) error {
	return d.setChecked(ctx, elementName, true)
}

// UncheckCheckbox - clears the named checkbox unless it already is
func (d *Dispatcher) UncheckCheckbox(ctx context.Context, elementName string) error {
	return d.setChecked(ctx, elementName, false)
}

func (d *Dispatcher) setChecked(ctx context.Context, elementName string, want bool) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	checked, err := el.IsChecked(ctx)
	if err != nil {
		return fmt.Errorf("failed to read state of %s: %w", elementName, err)
	}
	if checked == want {
		return nil
	}

	if want {
		d.logger.Infof("Checking: %s", elementName)
		err = el.Check(ctx)
	} else {
		d.logger.Infof("Unchecking: %s", elementName)
		err = el.Uncheck(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to toggle %s: %w", elementName, err)
	}
	return nil
}

// AttachFile - attaches a file from the asset root to the named file input
func (d *Dispatcher) AttachFile(ctx context.Context, file, elementName string) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	path, err := d.assetPath(file)
	if err != nil {
		return err
	}

	d.logger.Infof("Attaching %s to %s", path, elementName)
	if err := el.AttachFile(ctx, path); err != nil {
		return fmt.Errorf("failed to attach %s: %w", path, err)
	}
	return nil
}

// assetPath - joins file onto the asset root verbatim and checks it exists
func (d *Dispatcher) assetPath(file string) (string, error) {
	if d.config.AssetPath == "" {
		return "", errs.New(errs.Configuration, `Value "assetPath" not set in config`)
	}

	path, err := filepath.Abs(d.config.AssetPath + file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", file, err)
	}

	if _, err := d.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errs.Wrap(errs.FileNotFound, fmt.Sprintf("File: %s does not exist", path), err)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return path, nil
}

// HoverOver - moves the pointer over the named element
func (d *Dispatcher) HoverOver(ctx context.Context, elementName string) error {
	el, err := d.locator.Locate(ctx, elementName, nil)
	if err != nil {
		return err
	}

	d.logger.Infof("Hovering over: %s", elementName)
	if err := el.MouseOver(ctx); err != nil {
		return fmt.Errorf("failed to hover over %s: %w", elementName, err)
	}
	return nil
}
