package dto

// ErrorPage is the data rendered by error.html
type ErrorPage struct {
	Title   string
	Flash   string
	Status  int
	Message string
}
