// Package services implements the core business logic: the document
// intelligence analysis that derives a financial profile from acquired
// text, the config-driven eligibility evaluator, and the report
// orchestration that ties both to the checklist, query prediction and
// persistence.
package services
