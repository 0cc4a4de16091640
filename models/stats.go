package models

type StatusBreakdown struct {
	Pending    int64 `json:"pending" bson:"pending"`
	InProgress int64 `json:"in-progress" bson:"in-progress"`
	Completed  int64 `json:"completed" bson:"completed"`
}

type DashboardStats struct {
	TotalBeneficiaries int64           `json:"totalBeneficiaries" bson:"totalBeneficiaries"`
	VisitorsToday      int64           `json:"visitorsToday" bson:"visitorsToday"`
	StatusBreakdown    StatusBreakdown `json:"statusBreakdown" bson:"statusBreakdown"`
}
