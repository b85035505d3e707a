package domain

import "time"

// Payment is a rent payment record for one tenant and one month.
type Payment struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Month     string    `json:"month"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PayerName string    `json:"payer_name"`
	DatePaid  time.Time `json:"date_paid"`
}

func (p Payment) ToDoc() map[string]any {
	return map[string]any{
		"id":        p.ID,
		"tenantId":  p.TenantID,
		"month":     p.Month,
		"amount":    p.Amount,
		"method":    p.Method,
		"payerName": p.PayerName,
		"datePaid":  timeDoc(p.DatePaid),
	}
}

func PaymentFromDoc(m map[string]any) Payment {
	return Payment{
		ID:        docString(m, "id"),
		TenantID:  docString(m, "tenantId"),
		Month:     docString(m, "month"),
		Amount:    docFloat(m, "amount"),
		Method:    docString(m, "method"),
		PayerName: docString(m, "payerName"),
		DatePaid:  docTime(m, "datePaid"),
	}
}
