package postgres

var BuildGroupQuery = buildGroupQuery
