/*
Package domain contains the core domain models for the Florence assistant.

It defines the conversation state that callers carry between turns, the
stable response contract every turn resolves to, and the typed read-only
views of the host system's business records (claims, invoices, billable
items, reports). This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - ThreadState: the caller-owned conversation state, echoed back each turn.
  - PendingClarification: a slot-typed question awaiting a short reply.
  - Response: the stable answer contract (answer, citations, confidence, mode).
  - ClaimView / InvoiceView / BillableView / ReportView: schema-resolved
    read models produced by the data adapters.
*/
package domain
