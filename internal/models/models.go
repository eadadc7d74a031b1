package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&Staff{},
		&User{},
		&ShippingAddress{},
		&Vendor{},
		&Item{},
		&ItemLink{},
		&Tag{},
		&Deal{},
		&DealItem{},
		&DealVendor{},
		&DealItemQuantity{},
		&DealTag{},
		&DealMeta{},
		&DealVisit{},
		&Comment{},
		&UserCommitment{},
		&OrderDeal{},
		&OrderItem{},
		&ReceivedItem{},
		&Media{},
	}
}
