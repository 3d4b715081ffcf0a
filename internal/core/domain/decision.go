package domain

// DecisionOutcome is the result of one successful decision: the updated
// approval and the expense status recomputed in the same transaction.
type DecisionOutcome struct {
	Approval      Approval      `json:"approval"`
	ExpenseStatus ExpenseStatus `json:"expenseStatus"`
}

// MaxBulkDecisions bounds the number of approvals decided in one bulk request.
const MaxBulkDecisions = 100

// BulkDecisionItem is the result for one approval of a bulk decision.
// Exactly one of Outcome and Err is set.
type BulkDecisionItem struct {
	ApprovalID string
	Outcome    *DecisionOutcome
	Err        error
}

// BulkDecisionResult collects the per-approval results of a bulk decision, in request order.
type BulkDecisionResult struct {
	Decision  ApprovalStatus
	Items     []BulkDecisionItem
	Succeeded int
	Failed    int
}
