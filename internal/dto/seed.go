package dto

// SeedResponse reports what a seed run wrote.
type SeedResponse struct {
	Message      string `json:"message"`
	UsersSeeded  int    `json:"usersSeeded"`
	OrdersSeeded int    `json:"ordersSeeded"`
}
