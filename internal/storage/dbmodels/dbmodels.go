package dbmodels

type Account struct {
	Login        string
	PasswordHash string
	TotalSpent   float64
	Tier         string
}

type Service struct {
	ID          string
	Kind        string
	Description string
	BaseCost    float64
}
