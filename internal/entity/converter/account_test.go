package converter

import (
	"testing"

	"accountstore/internal/entity/db"
)

func TestAccountToSummary(t *testing.T) {
	account := &db.Account{
		UserID:    7,
		Username:  "test_std",
		Password:  "deadbeef",
		Role:      "student",
		StartTime: "2023-04-17 00:00:00",
		EndTime:   "2023-05-17 00:00:00",
	}

	summary := AccountToSummary(account)
	if summary.UserID != 7 || summary.Username != "test_std" || summary.Role != "student" {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.StartTime != account.StartTime || summary.EndTime != account.EndTime {
		t.Fatalf("window not copied: %#v", summary)
	}

	info := AccountToBaseInfo(account)
	if info.UserID != 7 || info.Role != "student" {
		t.Fatalf("unexpected base info: %#v", info)
	}

	if got := AccountToSummary(nil); got.UserID != 0 || got.Username != "" {
		t.Fatalf("expected zero summary for nil, got %#v", got)
	}
}

func TestAccountsToSummaries(t *testing.T) {
	accounts := []db.Account{{UserID: 1, Username: "a"}, {UserID: 2, Username: "b"}}
	summaries := AccountsToSummaries(accounts)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].Username != "a" || summaries[1].Username != "b" {
		t.Fatalf("order not preserved: %#v", summaries)
	}
}
