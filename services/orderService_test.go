package services

import (
	"DentalClinic/models"
	"context"
	"testing"
)

func newTestOrderService(t *testing.T) (*OrderService, *mockOrderStore, *fakeLocker) {
	t.Helper()
	patients := newMockPatientStore()
	_ = patients.Create(context.Background(), &models.Patient{ID: "p-1", CardNumber: "C-1", FirstName: "Amani"})
	other := models.User{ID: "u-doc2", Username: "drlee", Role: models.Role{Name: models.RoleDoctor}}
	orders := newMockOrderStore()
	locker := &fakeLocker{}
	svc := NewOrderService(patients, newMockUserStore(doctor, other), orders, locker)
	svc.now = stepClock(testStart)
	return svc, orders, locker
}

func TestAssignOrder_Upsert(t *testing.T) {
	svc, orders, locker := newTestOrderService(t)
	ctx := context.Background()

	first, created, err := svc.AssignOrder(ctx, "p-1", models.OrderInput{DoctorID: doctor.ID, Status: models.OrderActive}, receptionist)
	if err != nil || !created {
		t.Fatalf("expected a created order, got %v %v", created, err)
	}

	second, created, err := svc.AssignOrder(ctx, "p-1", models.OrderInput{DoctorID: "u-doc2", Status: models.OrderInactive}, receptionist)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created {
		t.Error("expected the second call to update")
	}
	if second.ID != first.ID {
		t.Errorf("expected the same order, got %s and %s", first.ID, second.ID)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(orders.orders))
	}
	stored := orders.orders[first.ID]
	if stored.AssignedDoctor.ID != "u-doc2" || stored.Status != models.OrderInactive {
		t.Errorf("expected the latest assignment, got %+v", stored)
	}
	if stored.CreatedBy != receptionist {
		t.Errorf("expected creator to be kept, got %v", stored.CreatedBy)
	}
	for _, key := range locker.acquired {
		if key != "order_lock:p-1" {
			t.Errorf("unexpected lock key %s", key)
		}
	}
}

func TestAssignOrder_SameInputTwice(t *testing.T) {
	svc, orders, _ := newTestOrderService(t)
	ctx := context.Background()
	in := models.OrderInput{DoctorID: doctor.ID, Status: models.OrderActive}

	_, _, _ = svc.AssignOrder(ctx, "p-1", in, receptionist)
	_, _, _ = svc.AssignOrder(ctx, "p-1", in, receptionist)

	if len(orders.orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders.orders))
	}
}

func TestAssignOrder_Errors(t *testing.T) {
	svc, _, _ := newTestOrderService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		patientID string
		in        models.OrderInput
		want      ErrorKind
	}{
		{"bad status", "p-1", models.OrderInput{DoctorID: doctor.ID, Status: "Done"}, KindValidation},
		{"missing patient", "p-9", models.OrderInput{DoctorID: doctor.ID, Status: models.OrderActive}, KindNotFound},
		{"missing doctor", "p-1", models.OrderInput{DoctorID: "ghost", Status: models.OrderActive}, KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.AssignOrder(ctx, tt.patientID, tt.in, receptionist)
			if KindOf(err) != tt.want {
				t.Errorf("expected kind %v, got %v", tt.want, err)
			}
		})
	}
}

func TestListActive(t *testing.T) {
	svc, _, _ := newTestOrderService(t)
	ctx := context.Background()
	_, _, _ = svc.AssignOrder(ctx, "p-1", models.OrderInput{DoctorID: doctor.ID, Status: models.OrderActive}, receptionist)

	all, err := svc.ListActive(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one group, got %v %v", all, err)
	}
	if all[0].CardNumber != "C-1" || all[0].FirstName != "Amani" || len(all[0].Orders) != 1 {
		t.Errorf("unexpected group %+v", all[0])
	}

	mine, _ := svc.ListActiveForDoctor(ctx, "u-doc2")
	if len(mine) != 0 {
		t.Errorf("expected no orders for the other doctor, got %v", mine)
	}

	count, _ := svc.CountActive(ctx)
	if count != 1 {
		t.Errorf("expected 1 active order, got %d", count)
	}
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	svc, _, _ := newTestOrderService(t)
	ctx := context.Background()
	order, _, _ := svc.AssignOrder(ctx, "p-1", models.OrderInput{DoctorID: doctor.ID, Status: models.OrderActive}, receptionist)

	bad := "Closed"
	if _, err := svc.Update(ctx, order.ID, models.OrderPatch{Status: &bad}); KindOf(err) != KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	inactive := models.OrderInactive
	updated, err := svc.Update(ctx, order.ID, models.OrderPatch{Status: &inactive})
	if err != nil || updated.Status != inactive {
		t.Errorf("expected inactive order, got %v %v", updated, err)
	}

	if err := svc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Delete(ctx, order.ID); KindOf(err) != KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
