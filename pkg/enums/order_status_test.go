package enums

import "testing"

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusApproved, OrderStatusDispensed, OrderStatusRejected} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if OrderStatus("cancelled").IsValid() {
		t.Fatal("unknown status must be invalid")
	}
	if OrderStatus("").IsValid() {
		t.Fatal("empty status must be invalid")
	}
}

func TestOrderStatusTransitionTable(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:  {OrderStatusApproved, OrderStatusDispensed, OrderStatusRejected},
		OrderStatusApproved: {OrderStatusDispensed},
	}

	for _, from := range validOrderStatuses {
		for _, to := range validOrderStatuses {
			want := false
			for _, target := range allowed[from] {
				if target == to {
					want = true
				}
			}
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if OrderStatusPending.IsTerminal() || OrderStatusApproved.IsTerminal() {
		t.Fatal("pending and approved are not terminal")
	}
	if !OrderStatusDispensed.IsTerminal() || !OrderStatusRejected.IsTerminal() {
		t.Fatal("dispensed and rejected are terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("approved")
	if err != nil {
		t.Fatalf("ParseOrderStatus: %v", err)
	}
	if status != OrderStatusApproved {
		t.Fatalf("expected approved, got %s", status)
	}

	if _, err := ParseOrderStatus("Approved"); err == nil {
		t.Fatal("parsing is case sensitive")
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("unknown status must fail to parse")
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	if err != nil {
		t.Fatalf("ParseRole: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("expected admin, got %s", role)
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("unknown role must fail to parse")
	}
}
