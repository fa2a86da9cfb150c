package db

// ShoppingItem 定义了购物清单条目。
// AddedToExpenses 标记该条目是否已经转记为一笔支出，
// 已购买且未转记的条目会出现在记账页的待补录建议里。
type ShoppingItem struct {
	Record
	Name            string `gorm:"not null" json:"name"`
	Category        string `gorm:"size:50" json:"category"`
	IsBought        bool   `json:"is_bought"`
	AddedToExpenses bool   `json:"added_to_expenses"`
}
