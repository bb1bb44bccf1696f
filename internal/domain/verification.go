package domain

// Purpose discriminates which authentication flow a stored verification code
// belongs to. A code issued for one purpose never validates another.
type Purpose string

const (
	PurposeRegister       Purpose = "register"
	PurposeLogin          Purpose = "login"
	PurposeForgotPassword Purpose = "forgot_password"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeRegister, PurposeLogin, PurposeForgotPassword:
		return true
	}
	return false
}

// SMSJob is the unit of work published to the delivery queue. The worker owns
// retries; the API side only enqueues.
type SMSJob struct {
	Task    string   `json:"task"`
	Args    []string `json:"args"`
	Attempt int      `json:"attempt"`
}

const TaskSendVerificationSMS = "send_verification_sms"
