package rvapi

// Credentials is the bearer token returned by a successful login. It is
// the principal handle every authenticated call takes.
type Credentials struct {
	AccessToken string `json:"accessToken"`
}

type UserInfo struct {
	UserID       int    `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	MoneyBalance int    `json:"moneyBalance"`
	Role         string `json:"role"`
}

// IsAdmin reports whether the principal carries the administrative
// capability that unlocks management mode.
func (u *UserInfo) IsAdmin() bool {
	return u.Role == "ADMIN"
}

type Category struct {
	CategoryID  int    `json:"categoryId"`
	Description string `json:"description"`
}

// Product is the customer-visible view; prices are minor units.
type Product struct {
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	SellPrice int    `json:"sellPrice"`
	Stock     int    `json:"stock"`
}

// ProductAdmin is the management view including the buy price.
type ProductAdmin struct {
	Barcode   string   `json:"barcode"`
	Name      string   `json:"name"`
	SellPrice int      `json:"sellPrice"`
	BuyPrice  int      `json:"buyPrice"`
	Category  Category `json:"category"`
	Stock     int      `json:"stock"`
}

type Box struct {
	BoxBarcode  string       `json:"boxBarcode"`
	ItemsPerBox int          `json:"itemsPerBox"`
	Product     ProductAdmin `json:"product"`
}
