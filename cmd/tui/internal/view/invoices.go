package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stackfield/crmd/internal/billing"
)

// InvoiceModel walks the open invoices one by one and records payments
// against them. Amounts are typed as money strings ("1,234.50") and the
// invoice status rolls forward automatically as the balance closes.
type InvoiceModel struct {
	CommonModel
	svc    *billing.Service
	tenant string

	queue   []*billing.Invoice
	current *billing.Invoice

	amountInput textinput.Model

	loading    bool
	status     string
	totalCount int
}

func NewInvoiceModel(svc *billing.Service, tenant string) InvoiceModel {
	ti := textinput.New()
	ti.Placeholder = "250.00"
	ti.Width = 20

	return InvoiceModel{
		svc:         svc,
		tenant:      tenant,
		amountInput: ti,
		loading:     true,
	}
}

func (m InvoiceModel) Title() string { return "Open Invoices" }

func (m InvoiceModel) ShortHelp() string {
	return "Enter: record payment | f: pay in full | s: skip | Esc: back"
}

func (m InvoiceModel) Init() tea.Cmd {
	return m.loadOpenCmd()
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				amount, err := billing.ParseMoney(m.amountInput.Value())
				if err != nil {
					m.status = fmt.Sprintf("Bad amount: %v", err)
					return m, nil
				}

				return m, m.payCmd(amount)
			}
		case "f":
			if m.current != nil {
				return m, m.payCmd(m.current.AmountDue())
			}
		case "s":
			if m.current != nil {
				m.nextInvoice()
				return m, nil
			}
		}

	case loadOpenMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.invoices
		m.totalCount = len(m.queue)
		m.nextInvoice()

	case paymentMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error recording payment: %v", msg.err)
			break
		}

		if msg.invoice.AmountDue() > 0 {
			// Partially paid. Keep it on screen so the rest can be
			// collected or skipped.
			m.current = msg.invoice
			m.status = fmt.Sprintf("Recorded. %s still due.", billing.FormatMoney(msg.invoice.AmountDue()))
			m.amountInput.SetValue("")

			break
		}

		m.status = ""
		m.nextInvoice()
	}

	m.amountInput, cmd = m.amountInput.Update(msg)

	return m, cmd
}

func (m InvoiceModel) View() string {
	if m.loading {
		return "Loading open invoices..."
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No open invoices.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render("All invoices settled.\n\n(Esc to back)")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Invoice %s [%s]\n", m.current.Number, m.current.Status)
	fmt.Fprintf(&b, "Issued: %s\n", FormatDate(m.current.IssueDate))

	if m.current.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s\n", FormatDate(*m.current.DueDate))
	}

	fmt.Fprintf(&b, "Total: %s  Outstanding: %s\n",
		billing.FormatMoney(m.current.TotalAmount),
		billing.FormatMoney(m.current.AmountDue()),
	)

	info := b.String()

	body := fmt.Sprintf("Open Invoice (%d remaining)\n\n%s\nPayment amount:\n%s\n\n(Enter to record, 'f' for full balance, 's' to skip, Esc to back)",
		len(m.queue)+1, info, m.amountInput.View())

	if m.status != "" {
		body = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + body
	}

	return lipgloss.NewStyle().Padding(2).Render(body)
}

func (m *InvoiceModel) nextInvoice() {
	if len(m.queue) == 0 {
		m.current = nil
		m.amountInput.SetValue("")

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.amountInput.SetValue("")
	m.amountInput.Focus()
}

// Messages

type loadOpenMsg struct {
	invoices []*billing.Invoice
	err      error
}

func (m InvoiceModel) loadOpenCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		all, err := m.svc.ListInvoices(ctx, m.tenant, billing.InvoiceFilter{})
		if err != nil {
			return loadOpenMsg{err: err}
		}

		var open []*billing.Invoice

		for _, inv := range all {
			if inv.Status != billing.InvoiceDraft && inv.AmountDue() > 0 {
				open = append(open, inv)
			}
		}

		return loadOpenMsg{invoices: open}
	}
}

type paymentMsg struct {
	invoice *billing.Invoice
	err     error
}

func (m InvoiceModel) payCmd(amount int64) tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.svc.RecordPayment(ctx, m.tenant, id, amount, "manual")

		return paymentMsg{invoice: inv, err: err}
	}
}
