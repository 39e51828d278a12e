package cli

import (
	"context"
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// Each section constructor below wires one backend collection into the
// generic entity list view. Sections keep a small by-id cache from the
// last load so edit forms can prefill without a second fetch; the list
// refetches on every visit, so the cache is never stale for long.

var errRecordGone = errors.New("record not found, refresh the list")

// saveRecord runs the persistence callback off the UI loop and reports
// the outcome as a transient notice.
func saveRecord(label string, save func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := save(context.Background()); err != nil {
			return noticeMsg{text: "\n  " + formatter.ErrorLine(actionErr(err))}
		}
		return noticeMsg{text: "\n  " + formatter.SuccessLine("Saved " + label)}
	}
}

func formTitle(base string, isEdit bool) string {
	if isEdit {
		return "Edit " + base
	}
	return "New " + base
}

// ── tenants ──────────────────────────────────────────────────────────────────

func tenantSection(s *SharedState) entitySection {
	byID := map[string]domain.Tenant{}

	build := func(t domain.Tenant) (View, error) {
		isEdit := t.ID != ""
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&t.Name),
			huh.NewInput().Title("Email").Validate(validateEmail).Value(&t.Email),
			huh.NewInput().Title("Phone").Value(&t.Phone),
			huh.NewInput().Title("Address").Value(&t.Address),
		))
		return newFormView(s, formTitle("Tenant", isEdit), form, func() tea.Cmd {
			return saveRecord(t.Name, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateTenant(ctx, &t)
				} else {
					_, err = s.App.API.CreateTenant(ctx, &t)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Tenants",
		headers: []string{"Name", "Email", "Phone", "Address"},
		load: func(ctx context.Context) ([]entityRow, error) {
			tenants, err := s.App.API.ListTenants(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(tenants))
			for _, t := range tenants {
				byID[t.ID] = t
				rows = append(rows, entityRow{
					id:    t.ID,
					label: t.Name,
					cells: []string{t.Name, t.Email, t.Phone, formatter.Truncate(t.Address, 32)},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Tenant{}) },
		editForm: func(id string) (View, error) {
			t, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(t)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteTenant(ctx, id)
		},
	}
}

// ── customers ────────────────────────────────────────────────────────────────

func customerSection(s *SharedState) entitySection {
	byID := map[string]domain.Customer{}

	build := func(c domain.Customer) (View, error) {
		tenants, err := s.App.API.ListTenants(context.Background())
		if err != nil {
			return nil, err
		}
		isEdit := c.ID != ""
		itemType := string(c.ItemType)
		if itemType == "" {
			itemType = string(domain.ItemTenant)
		}
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&c.Name),
			huh.NewSelect[string]().Title("Tenant").Options(tenantOptions(tenants)...).Value(&c.TenantID),
			itemTypeSelect(&itemType),
			huh.NewInput().Title("Email").Validate(validateEmail).Value(&c.Email),
			huh.NewInput().Title("Phone").Value(&c.Phone),
		))
		return newFormView(s, formTitle("Customer", isEdit), form, func() tea.Cmd {
			c.ItemType = domain.ItemType(itemType)
			return saveRecord(c.Name, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateCustomer(ctx, &c)
				} else {
					_, err = s.App.API.CreateCustomer(ctx, &c)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Customers",
		headers: []string{"Name", "Type", "Email", "Phone"},
		load: func(ctx context.Context) ([]entityRow, error) {
			customers, err := s.App.API.ListCustomers(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(customers))
			for _, c := range customers {
				byID[c.ID] = c
				rows = append(rows, entityRow{
					id:    c.ID,
					label: c.Name,
					cells: []string{c.Name, string(c.ItemType), c.Email, c.Phone},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Customer{}) },
		editForm: func(id string) (View, error) {
			c, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(c)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteCustomer(ctx, id)
		},
	}
}

// ── working locations ────────────────────────────────────────────────────────

func locationSection(s *SharedState) entitySection {
	byID := map[string]domain.Location{}

	build := func(l domain.Location) (View, error) {
		isEdit := l.ID != ""
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&l.Name),
			huh.NewInput().Title("Detail").Value(&l.Detail),
		))
		return newFormView(s, formTitle("Location", isEdit), form, func() tea.Cmd {
			return saveRecord(l.Name, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateLocation(ctx, &l)
				} else {
					_, err = s.App.API.CreateLocation(ctx, &l)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Locations",
		headers: []string{"Name", "Detail"},
		load: func(ctx context.Context) ([]entityRow, error) {
			locs, err := s.App.API.ListLocations(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(locs))
			for _, l := range locs {
				byID[l.ID] = l
				rows = append(rows, entityRow{
					id:    l.ID,
					label: l.Name,
					cells: []string{l.Name, formatter.Truncate(l.Detail, 48)},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Location{}) },
		editForm: func(id string) (View, error) {
			l, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(l)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteLocation(ctx, id)
		},
	}
}

// ── packages ─────────────────────────────────────────────────────────────────

func packageSection(s *SharedState) entitySection {
	byID := map[string]domain.Package{}

	build := func(p domain.Package) (View, error) {
		isEdit := p.ID != ""
		vehicleFee := ""
		personFee := ""
		if isEdit {
			vehicleFee = strconv.Itoa(p.VehicleFee)
			personFee = strconv.Itoa(p.PersonFee)
		}
		if p.Periode == "" {
			p.Periode = "monthly"
		}
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&p.Name),
			huh.NewSelect[string]().Title("Period").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
					huh.NewOption("Yearly", "yearly"),
				).
				Value(&p.Periode),
			huh.NewInput().Title("Vehicle Fee").Validate(validateOptionalInt).Value(&vehicleFee),
			huh.NewInput().Title("Person Fee").Validate(validateOptionalInt).Value(&personFee),
			huh.NewConfirm().Title("Active").Affirmative("Yes").Negative("No").Value(&p.Active),
		))
		return newFormView(s, formTitle("Package", isEdit), form, func() tea.Cmd {
			p.VehicleFee = parseIntOr(vehicleFee, 0)
			p.PersonFee = parseIntOr(personFee, 0)
			return saveRecord(p.Name, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdatePackage(ctx, &p)
				} else {
					_, err = s.App.API.CreatePackage(ctx, &p)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Packages",
		headers: []string{"Name", "Period", "Vehicle Fee", "Person Fee", "Active"},
		load: func(ctx context.Context) ([]entityRow, error) {
			pkgs, err := s.App.API.ListPackages(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(pkgs))
			for _, p := range pkgs {
				byID[p.ID] = p
				active := "no"
				if p.Active {
					active = "yes"
				}
				rows = append(rows, entityRow{
					id:    p.ID,
					label: p.Name,
					cells: []string{
						p.Name, p.Periode,
						formatter.FormatAmount(p.VehicleFee),
						formatter.FormatAmount(p.PersonFee),
						active,
					},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Package{Active: true}) },
		editForm: func(id string) (View, error) {
			p, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(p)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeletePackage(ctx, id)
		},
	}
}

// ── vehicles ─────────────────────────────────────────────────────────────────

func vehicleSection(s *SharedState) entitySection {
	byID := map[string]domain.Vehicle{}

	build := func(v domain.Vehicle) (View, error) {
		isEdit := v.ID != ""
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Plate Number").Validate(validateRequired("plate number")).Value(&v.PlateNumber),
			huh.NewInput().Title("Hull Number").Value(&v.HullNumber),
			huh.NewInput().Title("Driver Name").Value(&v.DriverName),
			huh.NewInput().Title("Attachment File").Placeholder("path or URL").Value(&v.AttachmentFile),
		))
		return newFormView(s, formTitle("Vehicle", isEdit), form, func() tea.Cmd {
			return saveRecord(v.PlateNumber, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateVehicle(ctx, &v)
				} else {
					_, err = s.App.API.CreateVehicle(ctx, &v)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Vehicles",
		headers: []string{"Plate", "Hull", "Driver", "Attachment"},
		load: func(ctx context.Context) ([]entityRow, error) {
			vehicles, err := s.App.API.ListVehicles(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(vehicles))
			for _, v := range vehicles {
				byID[v.ID] = v
				rows = append(rows, entityRow{
					id:    v.ID,
					label: v.PlateNumber,
					cells: []string{
						v.PlateNumber,
						formatter.OrDash(v.HullNumber),
						formatter.OrDash(v.DriverName),
						formatter.OrDash(formatter.Truncate(v.AttachmentFile, 24)),
					},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Vehicle{}) },
		editForm: func(id string) (View, error) {
			v, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(v)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteVehicle(ctx, id)
		},
	}
}

// ── drivers ──────────────────────────────────────────────────────────────────

func driverSection(s *SharedState) entitySection {
	byID := map[string]domain.Driver{}

	build := func(d domain.Driver) (View, error) {
		isEdit := d.ID != ""
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&d.Name),
			huh.NewInput().Title("License Number").Validate(validateRequired("license number")).Value(&d.LicenseNumber),
			huh.NewInput().Title("License File").Placeholder("path or URL").Value(&d.LicenseFile),
			huh.NewInput().Title("Phone").Value(&d.Phone),
		))
		return newFormView(s, formTitle("Driver", isEdit), form, func() tea.Cmd {
			return saveRecord(d.Name, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateDriver(ctx, &d)
				} else {
					_, err = s.App.API.CreateDriver(ctx, &d)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Drivers",
		headers: []string{"Name", "License", "Phone"},
		load: func(ctx context.Context) ([]entityRow, error) {
			drivers, err := s.App.API.ListDrivers(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(drivers))
			for _, d := range drivers {
				byID[d.ID] = d
				rows = append(rows, entityRow{
					id:    d.ID,
					label: d.Name,
					cells: []string{d.Name, d.LicenseNumber, formatter.OrDash(d.Phone)},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Driver{}) },
		editForm: func(id string) (View, error) {
			d, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(d)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteDriver(ctx, id)
		},
	}
}

// ── payments ─────────────────────────────────────────────────────────────────

func paymentSection(s *SharedState) entitySection {
	byID := map[string]domain.Payment{}

	build := func(p domain.Payment) (View, error) {
		permits, err := s.App.API.ListPermits(context.Background())
		if err != nil {
			return nil, err
		}
		permitOpts := make([]huh.Option[string], 0, len(permits))
		for _, permit := range permits {
			permitOpts = append(permitOpts, huh.NewOption(permit.DisplayID(), permit.ID))
		}
		isEdit := p.ID != ""
		amount := ""
		if isEdit {
			amount = strconv.Itoa(p.Amount)
		}
		status := string(p.Status)
		if status == "" {
			status = string(domain.PaymentUnpaid)
		}
		form := newForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Permit").Options(permitOpts...).Value(&p.PermitID),
			huh.NewInput().Title("Amount").Validate(validateOptionalInt).Value(&amount),
			huh.NewSelect[string]().Title("Method").
				Options(
					huh.NewOption("Cash", "cash"),
					huh.NewOption("Bank Transfer", "transfer"),
					huh.NewOption("Gateway", "gateway"),
				).
				Value(&p.Method),
			huh.NewSelect[string]().Title("Status").
				Options(
					huh.NewOption("Unpaid", string(domain.PaymentUnpaid)),
					huh.NewOption("Paid", string(domain.PaymentPaid)),
					huh.NewOption("Failed", string(domain.PaymentFailed)),
				).
				Value(&status),
			huh.NewInput().Title("Reference").Value(&p.Reference),
		))
		return newFormView(s, formTitle("Payment", isEdit), form, func() tea.Cmd {
			p.Amount = parseIntOr(amount, 0)
			p.Status = domain.PaymentStatus(status)
			return saveRecord("payment", func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdatePayment(ctx, &p)
				} else {
					_, err = s.App.API.CreatePayment(ctx, &p)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Payments",
		headers: []string{"Permit", "Amount", "Method", "Status", "Reference"},
		load: func(ctx context.Context) ([]entityRow, error) {
			payments, err := s.App.API.ListPayments(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(payments))
			for _, p := range payments {
				byID[p.ID] = p
				rows = append(rows, entityRow{
					id:    p.ID,
					label: "payment " + formatter.Truncate(p.ID, 8),
					cells: []string{
						formatter.Truncate(p.PermitID, 12),
						formatter.FormatAmount(p.Amount),
						formatter.OrDash(p.Method),
						string(p.Status),
						formatter.OrDash(p.Reference),
					},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.Payment{}) },
		editForm: func(id string) (View, error) {
			p, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(p)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeletePayment(ctx, id)
		},
	}
}

// ── users (admin only) ───────────────────────────────────────────────────────

func userSection(s *SharedState) entitySection {
	byID := map[string]domain.User{}

	build := func(u domain.User) (View, error) {
		isEdit := u.ID != ""
		role := string(u.Role)
		if role == "" {
			role = string(domain.RoleOperator)
		}
		passwordField := huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&u.Password)
		if !isEdit {
			passwordField = passwordField.Validate(validateRequired("password"))
		} else {
			passwordField = passwordField.Placeholder("leave blank to keep current")
		}
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Name").Validate(validateRequired("name")).Value(&u.Name),
			huh.NewInput().Title("Email").Validate(validateEmail).Value(&u.Email),
			huh.NewSelect[string]().Title("Role").
				Options(
					huh.NewOption("Admin", string(domain.RoleAdmin)),
					huh.NewOption("Operator", string(domain.RoleOperator)),
				).
				Value(&role),
			passwordField,
		))
		return newFormView(s, formTitle("User", isEdit), form, func() tea.Cmd {
			u.Role = domain.Role(role)
			return saveRecord(u.Name, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateUser(ctx, &u)
				} else {
					_, err = s.App.API.CreateUser(ctx, &u)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Users",
		headers: []string{"Name", "Email", "Role"},
		load: func(ctx context.Context) ([]entityRow, error) {
			users, err := s.App.API.ListUsers(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(users))
			for _, u := range users {
				byID[u.ID] = u
				rows = append(rows, entityRow{
					id:    u.ID,
					label: u.Name,
					cells: []string{u.Name, u.Email, string(u.Role)},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.User{}) },
		editForm: func(id string) (View, error) {
			u, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			u.Password = ""
			return build(u)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteUser(ctx, id)
		},
	}
}

// ── gateway settings (admin only) ────────────────────────────────────────────

func settingSection(s *SharedState) entitySection {
	byID := map[string]domain.GatewaySetting{}

	build := func(g domain.GatewaySetting) (View, error) {
		isEdit := g.ID != ""
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Provider").Validate(validateRequired("provider")).Value(&g.Provider),
			huh.NewInput().Title("Client Key").Value(&g.ClientKey),
			huh.NewInput().Title("Server Key").EchoMode(huh.EchoModePassword).Value(&g.ServerKey),
			huh.NewConfirm().Title("Sandbox Mode").Affirmative("Yes").Negative("No").Value(&g.Sandbox),
		))
		return newFormView(s, formTitle("Gateway Setting", isEdit), form, func() tea.Cmd {
			return saveRecord(g.Provider, func(ctx context.Context) error {
				var err error
				if isEdit {
					_, err = s.App.API.UpdateGatewaySetting(ctx, &g)
				} else {
					_, err = s.App.API.CreateGatewaySetting(ctx, &g)
				}
				return err
			})
		}), nil
	}

	return entitySection{
		title:   "Gateway Settings",
		headers: []string{"Provider", "Client Key", "Sandbox"},
		load: func(ctx context.Context) ([]entityRow, error) {
			settings, err := s.App.API.ListGatewaySettings(ctx)
			if err != nil {
				return nil, err
			}
			clear(byID)
			rows := make([]entityRow, 0, len(settings))
			for _, g := range settings {
				byID[g.ID] = g
				sandbox := "no"
				if g.Sandbox {
					sandbox = "yes"
				}
				rows = append(rows, entityRow{
					id:    g.ID,
					label: g.Provider,
					cells: []string{g.Provider, formatter.Truncate(g.ClientKey, 20), sandbox},
				})
			}
			return rows, nil
		},
		createForm: func() (View, error) { return build(domain.GatewaySetting{Sandbox: true}) },
		editForm: func(id string) (View, error) {
			g, ok := byID[id]
			if !ok {
				return nil, errRecordGone
			}
			return build(g)
		},
		remove: func(ctx context.Context, id string) error {
			return s.App.API.DeleteGatewaySetting(ctx, id)
		},
	}
}
