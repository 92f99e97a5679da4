package events

// Budget event types stored in the outbox for downstream consumers.
const (
	EventBudgetCreated     = "budget.created"
	EventBudgetUpdated     = "budget.updated"
	EventBudgetTrashed     = "budget.trashed"
	EventBudgetRestored    = "budget.restored"
	EventBudgetPurged      = "budget.purged"
	EventDocumentGenerated = "document.generated"
)

// BudgetPayload captures the minimal data attached to budget events.
type BudgetPayload struct {
	BudgetID    string `json:"budget_id"`
	DeviceModel string `json:"device_model,omitempty"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p BudgetPayload) ToMap() map[string]any {
	payload := map[string]any{
		"budget_id": p.BudgetID,
	}
	if p.DeviceModel != "" {
		payload["device_model"] = p.DeviceModel
	}
	return payload
}

// DocumentPayload captures the minimal data attached to document events.
type DocumentPayload struct {
	BudgetID string `json:"budget_id"`
	Format   string `json:"format"`
}

// ToMap converts a payload into an outbox-friendly map.
func (p DocumentPayload) ToMap() map[string]any {
	return map[string]any{
		"budget_id": p.BudgetID,
		"format":    p.Format,
	}
}
