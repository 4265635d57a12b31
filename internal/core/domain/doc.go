// Package domain contains the core business entities for eligibility
// report generation: uploaded documents, extracted financial fields,
// checklist results, predicted reviewer queries, and the assembled report.
//
// Entities here are created fresh per pipeline run and carry no identity
// beyond that run; persistence is the report store's concern.
package domain
