package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type WorkshiftChangedMailData struct {
	WorkshiftName string `json:"workshiftName"`
	Operation     string `json:"operation"` // created / updated / deleted
	Pattern       string `json:"pattern"`
	PatternStart  string `json:"patternStart"`
}
