package handler

import (
	"testing"

	"github.com/turfbook/match-admin/internal/model"
)

func TestRefundPlanRefundsOnlyBooked(t *testing.T) {
	participants := []model.Participant{
		{ID: 1, UserID: 11, PaidCents: 40000, Status: model.ParticipantStatusBooked},
		{ID: 2, UserID: 12, PaidCents: 36000, Status: model.ParticipantStatusBooked},
		{ID: 3, UserID: 13, PaidCents: 40000, Status: model.ParticipantStatusRemoved},
		{ID: 4, UserID: 14, PaidCents: 40000, Status: model.ParticipantStatusRefunded},
	}

	plan := refundPlan(9, participants)

	if plan.MatchID != 9 {
		t.Fatalf("matchId = %d", plan.MatchID)
	}
	if plan.ParticipantCount != 2 {
		t.Fatalf("participantCount = %d, want 2", plan.ParticipantCount)
	}
	if plan.TotalRefund != 76000 {
		t.Fatalf("totalRefund = %d, want 76000", plan.TotalRefund)
	}
	for _, r := range plan.Refunds {
		if r.RefundAmount != r.PaidAmount {
			t.Fatalf("refund %d != paid %d for participant %d", r.RefundAmount, r.PaidAmount, r.ParticipantID)
		}
	}
}

func TestRefundPlanEmptyMatch(t *testing.T) {
	plan := refundPlan(9, nil)
	if plan.ParticipantCount != 0 || plan.TotalRefund != 0 {
		t.Fatalf("plan = %+v", plan)
	}
	if plan.Refunds == nil {
		t.Fatalf("refunds must serialize as an empty array, not null")
	}
}
