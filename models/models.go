package models

// All returns every model registered for auto-migration, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&Permission{},
		&RolePermission{},
		&User{},
		&Section{},
		&DiningTable{},
		&Customer{},
		&WaitingToken{},
		&TaxesFee{},
		&Order{},
		&OrderTableMapping{},
		&OrderTaxMapping{},
		&OrderItemMapping{},
	}
}
