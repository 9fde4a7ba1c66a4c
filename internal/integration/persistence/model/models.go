package model

// All returns every model migrated at start up, in dependency order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&CategoryModel{},
		&AccountingCategoryModel{},
		&TransactionModel{},
		&AsientoModel{},
		&KPISummaryModel{},
		&AdviceModel{},
		&AuditLogModel{},
		&EmailQueueModel{},
	}
}
