package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
	"github.com/zaqiyusuf/gatepass/internal/domain"
	"github.com/zaqiyusuf/gatepass/internal/permit"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
)

// wizardDataMsg carries the reference collections every step needs for
// its select fields.
type wizardDataMsg struct {
	tenants   []domain.Tenant
	customers []domain.Customer
	packages  []domain.Package
	locations []domain.Location
	err       error
}

// wizardRatesMsg carries the pricing rates looked up for the summary.
type wizardRatesMsg struct {
	rates pricing.Rates
}

// permitSubmittedMsg reports the outcome of a submission attempt.
type permitSubmittedMsg struct {
	permit *domain.EntryPermit
	err    error
}

// permitWizard is the four-step permit editor. The draft lives only here;
// closing the wizard without submitting discards it. The header step is a
// form, the vehicle and personnel steps are row lists with modal entry
// forms, and the summary shows the assembled payload before the one
// submission call.
type permitWizard struct {
	state *SharedState
	ctrl  *permit.Controller

	tenants   []domain.Tenant
	customers []domain.Customer
	packages  []domain.Package
	locations []domain.Location
	loaded    bool
	loadErr   error

	headerForm *huh.Form
	headerVals headerValues

	vehCursor  int
	perCursor  int
	stepErr    string
	submitting bool
}

// headerValues holds the header form's bound fields so the draft only
// changes when the step is confirmed.
type headerValues struct {
	documentNumber   string
	tenantID         string
	customerID       string
	itemType         string
	registrationDate string
}

func newPermitWizard(state *SharedState, existing *domain.EntryPermit) *permitWizard {
	var draft *permit.Draft
	if existing != nil {
		draft = permit.DraftFrom(existing)
	} else {
		draft = permit.NewDraft()
	}
	return &permitWizard{
		state: state,
		ctrl:  permit.NewController(draft, state.App.API),
	}
}

func (v *permitWizard) ID() ViewID { return ViewWizard }

func (v *permitWizard) Title() string {
	if v.ctrl.Draft().IsEdit() {
		return "Edit Permit"
	}
	return "New Permit"
}

func (v *permitWizard) ShortHelp() []key.Binding {
	switch v.ctrl.Step() {
	case permit.StepVehicles, permit.StepPersonnel:
		return []key.Binding{
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	case permit.StepSummary:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		}
	}
}

func (v *permitWizard) Init() tea.Cmd {
	return v.loadData()
}

// loadData fetches the reference collections in one command.
func (v *permitWizard) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		tenants, err := app.API.ListTenants(ctx)
		if err != nil {
			return wizardDataMsg{err: err}
		}
		customers, err := app.API.ListCustomers(ctx)
		if err != nil {
			return wizardDataMsg{err: err}
		}
		packages, err := app.API.ListPackages(ctx)
		if err != nil {
			return wizardDataMsg{err: err}
		}
		locations, err := app.API.ListLocations(ctx)
		if err != nil {
			return wizardDataMsg{err: err}
		}
		return wizardDataMsg{
			tenants:   tenants,
			customers: customers,
			packages:  packages,
			locations: locations,
		}
	}
}

// buildHeaderForm binds a fresh form to the current draft values.
func (v *permitWizard) buildHeaderForm() *huh.Form {
	d := v.ctrl.Draft()
	v.headerVals = headerValues{
		documentNumber:   d.DocumentNumber,
		tenantID:         d.TenantID,
		customerID:       d.CustomerID,
		itemType:         string(d.ItemType),
		registrationDate: d.RegistrationDate,
	}
	if v.headerVals.itemType == "" {
		v.headerVals.itemType = string(domain.ItemTenant)
	}
	form := newForm(huh.NewGroup(
		huh.NewInput().
			Title("Document Number").
			Validate(validateRequired("document number")).
			Value(&v.headerVals.documentNumber),
		huh.NewSelect[string]().
			Title("Tenant").
			Options(tenantOptions(v.tenants)...).
			Value(&v.headerVals.tenantID),
		huh.NewSelect[string]().
			Title("Customer").
			Options(customerOptions(v.customers)...).
			Value(&v.headerVals.customerID),
		itemTypeSelect(&v.headerVals.itemType),
		huh.NewInput().
			Title("Registration Date").
			Validate(validateDate).
			Value(&v.headerVals.registrationDate),
	))
	return form
}

// applyHeader copies the confirmed form values into the draft.
func (v *permitWizard) applyHeader() {
	d := v.ctrl.Draft()
	d.DocumentNumber = strings.TrimSpace(v.headerVals.documentNumber)
	d.TenantID = v.headerVals.tenantID
	d.CustomerID = v.headerVals.customerID
	d.ItemType = domain.ItemType(v.headerVals.itemType)
	d.RegistrationDate = v.headerVals.registrationDate
}

func (v *permitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardDataMsg:
		v.loaded = true
		v.loadErr = msg.err
		if msg.err == nil {
			v.tenants = msg.tenants
			v.customers = msg.customers
			v.packages = msg.packages
			v.locations = msg.locations
			v.headerForm = v.buildHeaderForm()
			return v, v.headerForm.Init()
		}
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return loginRequiredMsg{} }
		}
		return v, nil

	case wizardRatesMsg:
		v.ctrl.SetRates(msg.rates)
		return v, nil

	case permitSubmittedMsg:
		v.submitting = false
		if msg.err != nil {
			v.stepErr = actionErr(msg.err).Error()
			if errors.Is(msg.err, api.ErrUnauthorized) {
				return v, func() tea.Msg { return loginRequiredMsg{} }
			}
			return v, nil
		}
		saved := msg.permit
		return v, tea.Batch(
			popView(),
			notice("\n  "+formatter.SuccessLine("Permit "+saved.DisplayID()+" saved")),
			func() tea.Msg { return refreshViewMsg{} },
		)

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	// huh advances fields through its own messages; the header form must
	// see them or enter never moves focus.
	if v.loaded && v.loadErr == nil && v.ctrl.Step() == permit.StepHeader {
		return v.updateHeader(msg)
	}
	return v, nil
}

func (v *permitWizard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, tea.Batch(popView(), notice("\n  "+formatter.Dim("Draft discarded.")))
	}
	if !v.loaded || v.loadErr != nil {
		return v, nil
	}

	switch v.ctrl.Step() {
	case permit.StepHeader:
		return v.updateHeader(msg)
	case permit.StepVehicles:
		return v.updateVehicles(msg)
	case permit.StepPersonnel:
		return v.updatePersonnel(msg)
	case permit.StepSummary:
		return v.updateSummary(msg)
	}
	return v, nil
}

func (v *permitWizard) updateHeader(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := v.headerForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.headerForm = f
	}
	if v.headerForm.State == huh.StateCompleted {
		v.applyHeader()
		if err := v.ctrl.Advance(); err != nil {
			v.stepErr = err.Error()
			v.headerForm = v.buildHeaderForm()
			return v, v.headerForm.Init()
		}
		v.stepErr = ""
	}
	return v, cmd
}

func (v *permitWizard) updateVehicles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := v.ctrl.Draft()
	switch msg.String() {
	case "up", "k":
		if v.vehCursor > 0 {
			v.vehCursor--
		}
	case "down", "j":
		if v.vehCursor < len(d.Vehicles)-1 {
			v.vehCursor++
		}
	case "a":
		return v, pushView(v.vehicleEntryForm(domain.VehicleEntry{}, ""))
	case "e":
		if v.vehCursor < len(d.Vehicles) {
			item := d.Vehicles[v.vehCursor]
			return v, pushView(v.vehicleEntryForm(item.Entry, item.Key))
		}
	case "x":
		if v.vehCursor < len(d.Vehicles) {
			d.RemoveVehicle(d.Vehicles[v.vehCursor].Key)
			if v.vehCursor >= len(d.Vehicles) && v.vehCursor > 0 {
				v.vehCursor--
			}
		}
	case "enter":
		if err := v.ctrl.Advance(); err != nil {
			v.stepErr = err.Error()
		} else {
			v.stepErr = ""
		}
	case "b":
		return v, v.stepBack()
	}
	return v, nil
}

func (v *permitWizard) updatePersonnel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := v.ctrl.Draft()
	switch msg.String() {
	case "up", "k":
		if v.perCursor > 0 {
			v.perCursor--
		}
	case "down", "j":
		if v.perCursor < len(d.Personnel)-1 {
			v.perCursor++
		}
	case "a":
		return v, pushView(v.personnelEntryForm(domain.PersonnelEntry{}, ""))
	case "e":
		if v.perCursor < len(d.Personnel) {
			item := d.Personnel[v.perCursor]
			return v, pushView(v.personnelEntryForm(item.Entry, item.Key))
		}
	case "x":
		if v.perCursor < len(d.Personnel) {
			d.RemovePersonnel(d.Personnel[v.perCursor].Key)
			if v.perCursor >= len(d.Personnel) && v.perCursor > 0 {
				v.perCursor--
			}
		}
	case "enter":
		if err := v.ctrl.Advance(); err != nil {
			v.stepErr = err.Error()
			return v, nil
		}
		v.stepErr = ""
		return v, v.lookupRates()
	case "b":
		return v, v.stepBack()
	}
	return v, nil
}

func (v *permitWizard) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		if v.submitting {
			return v, nil
		}
		v.submitting = true
		v.stepErr = ""
		return v, v.submit()
	case "b":
		return v, v.stepBack()
	}
	return v, nil
}

// stepBack moves the wizard one step back, rebuilding the header form when
// it lands there so the form reflects the draft.
func (v *permitWizard) stepBack() tea.Cmd {
	v.stepErr = ""
	v.ctrl.Back()
	if v.ctrl.Step() == permit.StepHeader {
		v.headerForm = v.buildHeaderForm()
		return v.headerForm.Init()
	}
	return nil
}

// lookupRates resolves pricing from the first personnel entry's package,
// falling back to the defaults when no package applies.
func (v *permitWizard) lookupRates() tea.Cmd {
	svc := v.state.App.Pricing
	d := v.ctrl.Draft()
	packageID := ""
	if len(d.Personnel) > 0 {
		packageID = d.Personnel[0].Entry.PackageID
	}
	return func() tea.Msg {
		return wizardRatesMsg{rates: svc.LookupRates(context.Background(), packageID)}
	}
}

func (v *permitWizard) submit() tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		saved, err := ctrl.Submit(context.Background())
		return permitSubmittedMsg{permit: saved, err: err}
	}
}

// vehicleEntryForm builds the modal add/edit form for one vehicle row.
// key is empty for a new row.
func (v *permitWizard) vehicleEntryForm(entry domain.VehicleEntry, existingKey string) View {
	if entry.StartDate == "" {
		entry.StartDate = v.ctrl.Draft().RegistrationDate
	}
	title := "Add Vehicle"
	if existingKey != "" {
		title = "Edit Vehicle"
	}
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Package").Options(packageOptions(v.packages)...).Value(&entry.PackageID),
			huh.NewInput().Title("Plate Number").Validate(validateRequired("plate number")).Value(&entry.PlateNumber),
			huh.NewInput().Title("Hull Number").Value(&entry.HullNumber),
			huh.NewInput().Title("Cargo").Value(&entry.Cargo),
			huh.NewInput().Title("Origin").Value(&entry.Origin),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Working Location").Options(locationOptions(v.locations)...).Value(&entry.WorkingLocation),
			huh.NewInput().Title("Start Date").Validate(validateDate).Value(&entry.StartDate),
			huh.NewInput().Title("End Date").Validate(validateOptionalDate).Value(&entry.EndDate),
			huh.NewInput().Title("Driver Name").Value(&entry.DriverName),
			huh.NewInput().Title("Driver License File").Placeholder("path or URL").Value(&entry.DriverLicense),
			huh.NewInput().Title("Attachment File").Placeholder("path or URL").Value(&entry.AttachmentFile),
		),
	)
	return newFormView(v.state, title, form, func() tea.Cmd {
		d := v.ctrl.Draft()
		if existingKey == "" {
			d.AddVehicle(entry)
		} else {
			for i := range d.Vehicles {
				if d.Vehicles[i].Key == existingKey {
					d.Vehicles[i].Entry = entry
					break
				}
			}
		}
		return nil
	})
}

// personnelEntryForm builds the modal add/edit form for one personnel row.
func (v *permitWizard) personnelEntryForm(entry domain.PersonnelEntry, existingKey string) View {
	title := "Add Personnel"
	if existingKey != "" {
		title = "Edit Personnel"
	}
	form := newForm(huh.NewGroup(
		huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&entry.Name),
		huh.NewInput().Title("ID / License Number").Validate(validateRequired("id number")).Value(&entry.IDNumber),
		huh.NewSelect[string]().Title("Location").Options(locationOptions(v.locations)...).Value(&entry.Location),
		huh.NewSelect[string]().Title("Package").Options(packageOptions(v.packages)...).Value(&entry.PackageID),
		huh.NewInput().Title("Notes").Value(&entry.Notes),
	))
	return newFormView(v.state, title, form, func() tea.Cmd {
		d := v.ctrl.Draft()
		if existingKey == "" {
			d.AddPersonnel(entry)
		} else {
			for i := range d.Personnel {
				if d.Personnel[i].Key == existingKey {
					d.Personnel[i].Entry = entry
					break
				}
			}
		}
		return nil
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *permitWizard) View() string {
	if !v.loaded {
		return "\n  " + formatter.Dim("Loading reference data...")
	}
	if v.loadErr != nil {
		return "\n  " + formatter.ErrorLine(actionErr(v.loadErr))
	}

	var b strings.Builder
	b.WriteString("\n  " + v.stepIndicator() + "\n\n")

	switch v.ctrl.Step() {
	case permit.StepHeader:
		b.WriteString(indent(v.headerForm.View(), 2))
	case permit.StepVehicles:
		b.WriteString(v.renderVehicles())
	case permit.StepPersonnel:
		b.WriteString(v.renderPersonnel())
	case permit.StepSummary:
		b.WriteString(v.renderSummary())
	}

	if v.stepErr != "" {
		b.WriteString("\n\n  " + formatter.StyleRed.Render("✗ "+v.stepErr))
	}
	return b.String()
}

// stepIndicator renders the four step names with the current one marked.
func (v *permitWizard) stepIndicator() string {
	steps := []permit.Step{permit.StepHeader, permit.StepVehicles, permit.StepPersonnel, permit.StepSummary}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.Index(), s)
		if s == v.ctrl.Step() {
			parts = append(parts, formatter.StyleHeader.Render(label))
		} else if s < v.ctrl.Step() {
			parts = append(parts, formatter.StyleGreen.Render(label))
		} else {
			parts = append(parts, formatter.Dim(label))
		}
	}
	return strings.Join(parts, formatter.Dim("  ›  "))
}

func (v *permitWizard) renderVehicles() string {
	d := v.ctrl.Draft()
	if len(d.Vehicles) == 0 {
		return "  " + formatter.Dim("No vehicles. Press a to add one, enter to skip.")
	}
	headers := []string{" ", "Plate", "Package", "Cargo", "Location", "Start", "Driver"}
	rows := make([][]string, 0, len(d.Vehicles))
	for i, item := range d.Vehicles {
		marker := " "
		if i == v.vehCursor {
			marker = formatter.StyleGreen.Render("▸")
		}
		e := item.Entry
		rows = append(rows, []string{
			marker,
			e.PlateNumber,
			v.packageName(e.PackageID),
			formatter.OrDash(formatter.Truncate(e.Cargo, 16)),
			formatter.OrDash(e.WorkingLocation),
			e.StartDate,
			formatter.OrDash(e.DriverName),
		})
	}
	return indent(formatter.RenderTable(headers, rows), 2)
}

func (v *permitWizard) renderPersonnel() string {
	d := v.ctrl.Draft()
	if len(d.Personnel) == 0 {
		return "  " + formatter.Dim("No personnel. Press a to add one, enter to skip.")
	}
	headers := []string{" ", "Name", "ID Number", "Location", "Package"}
	rows := make([][]string, 0, len(d.Personnel))
	for i, item := range d.Personnel {
		marker := " "
		if i == v.perCursor {
			marker = formatter.StyleGreen.Render("▸")
		}
		e := item.Entry
		rows = append(rows, []string{
			marker,
			e.Name,
			e.IDNumber,
			formatter.OrDash(e.Location),
			v.packageName(e.PackageID),
		})
	}
	return indent(formatter.RenderTable(headers, rows), 2)
}

func (v *permitWizard) renderSummary() string {
	d := v.ctrl.Draft()
	var b strings.Builder

	b.WriteString("  " + formatter.Header("Document") + "\n")
	b.WriteString("  " + formatter.Dim("Number:   ") + d.DocumentNumber + "\n")
	b.WriteString("  " + formatter.Dim("Tenant:   ") + v.tenantName(d.TenantID) + "\n")
	b.WriteString("  " + formatter.Dim("Customer: ") + v.customerName(d.CustomerID) + "\n")
	b.WriteString("  " + formatter.Dim("Type:     ") + string(d.ItemType) + "\n")
	b.WriteString("  " + formatter.Dim("Date:     ") + d.RegistrationDate + "\n\n")

	b.WriteString("  " + formatter.Header(fmt.Sprintf("Vehicles (%d)", len(d.Vehicles))) + "\n")
	if len(d.Vehicles) == 0 {
		b.WriteString("  " + formatter.Dim("none") + "\n")
	} else {
		rows := make([][]string, 0, len(d.Vehicles))
		for _, item := range d.Vehicles {
			e := item.Entry
			rows = append(rows, []string{e.PlateNumber, v.packageName(e.PackageID), formatter.OrDash(e.WorkingLocation), e.StartDate})
		}
		b.WriteString(indent(formatter.RenderTable([]string{"Plate", "Package", "Location", "Start"}, rows), 2))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + formatter.Header(fmt.Sprintf("Personnel (%d)", len(d.Personnel))) + "\n")
	if len(d.Personnel) == 0 {
		b.WriteString("  " + formatter.Dim("none") + "\n")
	} else {
		rows := make([][]string, 0, len(d.Personnel))
		for _, item := range d.Personnel {
			e := item.Entry
			rows = append(rows, []string{e.Name, e.IDNumber, formatter.OrDash(e.Location)})
		}
		b.WriteString(indent(formatter.RenderTable([]string{"Name", "ID Number", "Location"}, rows), 2))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + formatter.Bold("Total: Rp "+formatter.FormatAmount(v.ctrl.Total())) + "\n")
	if v.submitting {
		b.WriteString("\n  " + formatter.Dim("Submitting..."))
	} else {
		b.WriteString("\n  " + formatter.Dim("Press enter to submit."))
	}
	return b.String()
}

func (v *permitWizard) tenantName(id string) string {
	for _, t := range v.tenants {
		if t.ID == id {
			return t.Name
		}
	}
	return formatter.OrDash(id)
}

func (v *permitWizard) customerName(id string) string {
	for _, c := range v.customers {
		if c.ID == id {
			return c.Name
		}
	}
	return formatter.OrDash(id)
}

func (v *permitWizard) packageName(id string) string {
	for _, p := range v.packages {
		if p.ID == id {
			return p.Name
		}
	}
	return formatter.OrDash("")
}
