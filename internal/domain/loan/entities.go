package loan

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Record is the server-owned loan representation. This client only reads it;
// status drives the pending/active/past partition.
type Record struct {
	ID             string    `json:"_id"`
	LoanType       string    `json:"loanType"`
	Amount         float64   `json:"amount"`
	Installments   int       `json:"installments"`
	InterestRate   float64   `json:"interestRate"`
	Purpose        string    `json:"purpose"`
	Status         Status    `json:"status"`
	NextPayDate    time.Time `json:"nextPayDate"`
	IDDocumentPath string    `json:"idDocumentPath,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Repayment is one scheduled repayment unit from the remote repayment listing.
type Repayment struct {
	ID      string    `json:"_id"`
	LoanID  string    `json:"loanId"`
	Amount  float64   `json:"amount"`
	DueDate time.Time `json:"dueDate"`
	Status  string    `json:"status"`
}

// ApplicationDraft is the in-progress form state. Numeric inputs stay strings
// until validation: the form delivers raw text, and "must parse" is itself a
// rule rather than a precondition.
type ApplicationDraft struct {
	LoanType         string `json:"loanType" form:"loanType"`
	Amount           string `json:"amount" form:"amount"`
	PaymentFrequency string `json:"paymentFrequency" form:"paymentFrequency"`
	Installments     string `json:"installments" form:"installments"`
	Purpose          string `json:"purpose" form:"purpose"`
	Employment       string `json:"employment" form:"employment"`
	Income           string `json:"income" form:"income"`
	PayFrequency     string `json:"payFrequency" form:"payFrequency"`
	NextPayDate      string `json:"nextPayDate" form:"nextPayDate"`

	// Personal-information section; only validated when shown.
	ShowPersonalInfo bool   `json:"showPersonalInfo" form:"showPersonalInfo"`
	SSN              string `json:"ssn" form:"ssn"`
	IDType           string `json:"idType" form:"idType"`

	AccountType      string `json:"accountType" form:"accountType"`
	RoutingNumber    string `json:"routingNumber" form:"routingNumber"`
	AccountNumber    string `json:"accountNumber" form:"accountNumber"`
	HasDirectDeposit bool   `json:"hasDirectDeposit" form:"hasDirectDeposit"`
}
