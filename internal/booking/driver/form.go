// Package driver implements the booking-form UI capability on
// Playwright. The booking site nests its form three iframes deep
// (frameBottom > frameContent > frameBookingDetails); every locator
// goes through that chain.
package driver

import (
	"context"
	"fmt"

	"fbsbot/pkg/browser"
	"fbsbot/pkg/config"
	"fbsbot/pkg/logger"

	"github.com/playwright-community/playwright-go"
)

const (
	frameBottomSelector  = `iframe[id="frameBottom"]`
	frameContentSelector = `iframe[id="frameContent"]`
	frameDetailsSelector = `iframe[id="frameBookingDetails"]`

	selectorDateInput       = "#DateBookingFrom_c1_textDate"
	selectorNextMonthArrow  = `[id="__calendar_nextArrow"]`
	selectorSearchPanel     = "#panel_SimpleSearch"
	selectorSearchButton    = "#panel_buttonSimpleSearch"
	selectorSlotCell        = ".scheduler_bluewhite_cell"
	selectorSelectedSlot    = `.scheduler_bluewhite_event[title*="selected"]`
	selectorStartDropdown   = "#bookingFormControl1_DropDownStartTime_c1"
	selectorEndDropdown     = "#bookingFormControl1_DropDownEndTime_c1"
	selectorPurposeTextbox  = "#bookingFormControl1_TextboxPurpose_c1"
	selectorTermsCheckbox   = "#bookingFormControl1_TermsAndConditionsCheckbox_c1"
	searchAvailabilityLink  = "Search Availability"
	makeBookingLink         = "Make Booking"
	addCoBookerLink         = "Add"
	coBookerSearchLink      = "Search"
	coBookerKeywordCellName = "Keywords"
	confirmLink             = "Confirm"

	// The availability grid addresses time columns by cell index; 35 is
	// the first bookable 08:30 cell of the selected facility row.
	slotCellIndex = 35
)

type FormDriver struct {
	session    *browser.Session
	cfg        *config.Config
	logger     *logger.Logger
	page       playwright.Page
	browserCtx playwright.BrowserContext
}

func NewFormDriver(session *browser.Session, cfg *config.Config, log *logger.Logger) *FormDriver {
	return &FormDriver{
		session: session,
		cfg:     cfg,
		logger:  log,
	}
}

// contentFrame resolves the two-level iframe nest hosting the booking
// scheduler.
func (d *FormDriver) contentFrame() playwright.FrameLocator {
	return d.page.FrameLocator(frameBottomSelector).FrameLocator(frameContentSelector)
}

// detailsFrame resolves the third iframe hosting the booking details
// form.
func (d *FormDriver) detailsFrame() playwright.FrameLocator {
	return d.contentFrame().FrameLocator(frameDetailsSelector)
}

func (d *FormDriver) OpenBookingPage(ctx context.Context, url string) error {
	page, browserCtx, err := d.session.NewPage(d.cfg.StorageStatePath)
	if err != nil {
		return err
	}
	d.page = page
	d.browserCtx = browserCtx

	d.logger.Info("Navigating to booking page", "url", url)
	_, err = d.page.Goto(url)
	return err
}

func (d *FormDriver) OpenDatePicker(ctx context.Context) error {
	d.logger.Debug("Opening date picker")
	return d.contentFrame().Locator(selectorDateInput).Click()
}

func (d *FormDriver) NextMonth(ctx context.Context) error {
	d.logger.Debug("Navigating to next month in calendar")
	return d.contentFrame().Locator(selectorNextMonthArrow).Click()
}

func (d *FormDriver) SelectDate(ctx context.Context, calendarTitle string) error {
	d.logger.Debug("Selecting date in calendar", "formatted_date", calendarTitle)
	return d.contentFrame().GetByTitle(calendarTitle).Click()
}

func (d *FormDriver) SearchFacility(ctx context.Context, facility string) error {
	d.logger.Debug("Searching for facility", "facility", facility)
	if err := d.contentFrame().Locator(selectorSearchPanel).
		GetByRole(*playwright.AriaRoleTextbox).Fill(facility); err != nil {
		return err
	}
	return d.contentFrame().Locator(selectorSearchButton).Click()
}

func (d *FormDriver) WaitFacilityListed(ctx context.Context, facility string) error {
	return d.contentFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: facility,
	}).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateAttached,
	})
}

func (d *FormDriver) SearchAvailability(ctx context.Context) error {
	return d.contentFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: searchAvailabilityLink,
	}).Click()
}

func (d *FormDriver) SelectSlotCell(ctx context.Context) error {
	// The grid intercepts pointer events on its overlay, so the click
	// has to be forced through.
	if err := d.contentFrame().Locator(selectorSlotCell).Nth(slotCellIndex).Click(playwright.LocatorClickOptions{
		Force: playwright.Bool(true),
	}); err != nil {
		return err
	}
	return d.contentFrame().Locator(selectorSelectedSlot).WaitFor()
}

func (d *FormDriver) OpenBookingForm(ctx context.Context) error {
	return d.contentFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: makeBookingLink,
	}).Click()
}

func (d *FormDriver) SelectStartTime(ctx context.Context, option string) error {
	d.logger.Debug("Setting booking start time", "start_time", option)
	_, err := d.detailsFrame().Locator(selectorStartDropdown).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{option},
	})
	return err
}

func (d *FormDriver) SelectEndTime(ctx context.Context, option string) error {
	d.logger.Debug("Setting booking end time", "end_time", option)
	_, err := d.detailsFrame().Locator(selectorEndDropdown).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{option},
	})
	return err
}

// WaitFormSettled pauses while the booking form reloads itself after
// time selection. Any field filled during the reload is wiped, and the
// reload exposes no readiness signal; the wait length comes from
// configuration. Known fragility on slow networks.
func (d *FormDriver) WaitFormSettled(ctx context.Context) error {
	d.page.WaitForTimeout(float64(d.cfg.FormSettleWait.Milliseconds()))
	return nil
}

func (d *FormDriver) FillPurpose(ctx context.Context, purpose string) error {
	return d.detailsFrame().Locator(selectorPurposeTextbox).Fill(purpose)
}

func (d *FormDriver) AddCoBooker(ctx context.Context, identity string) error {
	if err := d.detailsFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: addCoBookerLink,
	}).Click(); err != nil {
		return fmt.Errorf("opening co-booker search: %w", err)
	}

	keywordBox := d.detailsFrame().GetByRole(*playwright.AriaRoleCell, playwright.FrameLocatorGetByRoleOptions{
		Name: coBookerKeywordCellName,
	}).GetByRole(*playwright.AriaRoleTextbox)
	if err := keywordBox.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return fmt.Errorf("awaiting co-booker search window: %w", err)
	}
	if err := keywordBox.Fill(identity); err != nil {
		return fmt.Errorf("entering co-booker identity: %w", err)
	}

	if err := d.detailsFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: coBookerSearchLink,
	}).Click(); err != nil {
		return fmt.Errorf("searching co-booker: %w", err)
	}

	match := d.detailsFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: identity,
	})
	if err := match.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateAttached,
	}); err != nil {
		return fmt.Errorf("awaiting co-booker result: %w", err)
	}
	return match.Click()
}

func (d *FormDriver) AcceptTerms(ctx context.Context) error {
	return d.detailsFrame().Locator(selectorTermsCheckbox).Click()
}

func (d *FormDriver) Confirm(ctx context.Context) error {
	return d.detailsFrame().GetByRole(*playwright.AriaRoleLink, playwright.FrameLocatorGetByRoleOptions{
		Name: confirmLink,
	}).Click()
}

// WaitConfirmation gives the site time to register the submission
// before the context is torn down. No confirmation element is stable
// enough to wait on.
func (d *FormDriver) WaitConfirmation(ctx context.Context) error {
	d.page.WaitForTimeout(float64(d.cfg.FormSettleWait.Milliseconds()))
	return nil
}

// Close releases the page context. Safe to call before OpenBookingPage
// and after a partial failure.
func (d *FormDriver) Close() error {
	if d.browserCtx == nil {
		return nil
	}
	err := d.browserCtx.Close()
	d.browserCtx = nil
	d.page = nil
	return err
}
