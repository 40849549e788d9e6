package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impact-cms/florence/pkg/domain"
)

func TestClassifyLadder(t *testing.T) {
	cases := []struct {
		question string
		want     Intent
	}{
		{"What can you do?", Capabilities},
		{"help", Capabilities},
		{"Which are my top claims by uninvoiced hours?", TopUninvoiced},
		{"Give me a system snapshot", SystemOverview},
		{"How is everything looking?", SystemOverview},
		{"How many invoices do I have?", InvoiceBreakdown},
		{"What's the invoice breakdown?", InvoiceBreakdown},
		{"What is the claimant's date of birth?", ClaimField},
		{"Who is the adjuster?", ClaimField},
		{"Summarize this claim", ClaimSummary},
		{"What's the work status on the latest report?", WorkStatus},
		{"How many reports do I have?", ReportsSummary},
		{"Summarize reports on this claim", ReportsSummary},
		{"What's the billable mix on this claim?", BillableMix},
		{"How does this claim compare to the system?", BillableMix},
		{"What's my workload like?", Workload},
		{"How many hours have I billed?", BillableTotals},
		{"How many miles have I driven?", BillableTotals},
		{"How much expense do I have?", BillableTotals},
		{"List my uninvoiced billables", UninvoicedList},
		{"How much uninvoiced work do I have?", UninvoicedValue},
		{"Summarize my billables", BillablesSummary},
		{"How much outstanding billing do I have?", BillingTotal},
		{"How much billing do I have?", BillingTotal},
		{"How many claims do I have?", ClaimCount},
		{"How many open claims do I have?", ClaimCount},
	}
	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			m, ok := Classify(tc.question)
			require.True(t, ok)
			assert.Equal(t, tc.want, m.Intent)
		})
	}
}

func TestClassifyUnhandled(t *testing.T) {
	m, ok := Classify("Have any adjusters been slow to return calls lately?")
	assert.False(t, ok)
	assert.Equal(t, Unhandled, m.Intent)
}

func TestClassifyPrecedence(t *testing.T) {
	// Overview phrasing beats the count rung even when "claims" appears.
	m, ok := Classify("Give me a snapshot of my claims")
	require.True(t, ok)
	assert.Equal(t, SystemOverview, m.Intent)

	// Invoice counting is an invoice breakdown, not a billing total.
	m, ok = Classify("How many unpaid invoices do I have?")
	require.True(t, ok)
	assert.Equal(t, InvoiceBreakdown, m.Intent)
}

func TestClassifyFieldExtraction(t *testing.T) {
	m, ok := Classify("What is the date of injury?")
	require.True(t, ok)
	assert.Equal(t, ClaimField, m.Intent)
	assert.Equal(t, "doi", m.Field)

	m, ok = Classify("What's the adjuster's phone number?")
	require.True(t, ok)
	// Adjuster identity outranks the phone phrasing in the table.
	assert.Equal(t, "adjuster", m.Field)
}

func TestExtractClaimScope(t *testing.T) {
	cases := []struct {
		question string
		want     domain.ClaimScope
	}{
		{"How many open claims do I have?", domain.ScopeOpen},
		{"how many active claims", domain.ScopeOpen},
		{"How many closed claims do I have?", domain.ScopeClosed},
		{"how many inactive claims", domain.ScopeClosed},
		{"How many open and closed claims do I have?", domain.ScopeBoth},
		{"how many claims total", domain.ScopeBoth},
		{"How many claims do I have?", domain.ScopeBoth},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractClaimScope(tc.question), tc.question)
	}
}

func TestExtractBillingScope(t *testing.T) {
	assert.Equal(t, domain.BillingOutstanding, ExtractBillingScope("How much outstanding billing do I have?"))
	assert.Equal(t, domain.BillingOutstanding, ExtractBillingScope("what am I owed"))
	assert.Equal(t, domain.BillingTotal, ExtractBillingScope("How much have I invoiced in total?"))
	assert.Equal(t, domain.BillingScope(""), ExtractBillingScope("How much billing do I have?"))
}

func TestMentionsThisClaim(t *testing.T) {
	assert.True(t, MentionsThisClaim("How many invoices are on this claim?"))
	assert.False(t, MentionsThisClaim("How many invoices do I have?"))
}
