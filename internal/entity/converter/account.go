package converter

import (
	"accountstore/internal/entity/db"
	"accountstore/internal/entity/dto"
)

// AccountToSummary converts a db.Account to dto.AccountSummary.
func AccountToSummary(a *db.Account) dto.AccountSummary {
	if a == nil {
		return dto.AccountSummary{}
	}
	return dto.AccountSummary{
		UserID:    a.UserID,
		Username:  a.Username,
		Role:      a.Role,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	}
}

// AccountsToSummaries converts a slice of db.Account to dto.AccountSummary.
func AccountsToSummaries(accounts []db.Account) []dto.AccountSummary {
	summaries := make([]dto.AccountSummary, len(accounts))
	for i := range accounts {
		summaries[i] = AccountToSummary(&accounts[i])
	}
	return summaries
}

// AccountToBaseInfo 提取账户基础信息
func AccountToBaseInfo(a *db.Account) dto.BaseInfo {
	if a == nil {
		return dto.BaseInfo{}
	}
	return dto.BaseInfo{
		UserID:    a.UserID,
		Role:      a.Role,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	}
}
