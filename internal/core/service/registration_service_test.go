package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clubhub/events-api/internal/core/domain"
)

const ticketBucket = "qr-bucket"

func newRegistrationFixture() (*stubUserRepo, *stubEventRepo, *stubRegistrationRepo, *stubDispatcher, *RegistrationService) {
	users := newStubUserRepo()
	events := newStubEventRepo()
	regs := newStubRegistrationRepo()
	dispatcher := &stubDispatcher{}
	resolver := NewIdentityService(users, discardLogger)
	svc := NewRegistrationService(regs, events, resolver, dispatcher, &stubBlobStore{}, ticketBucket, discardLogger)
	return users, events, regs, dispatcher, svc
}

func TestRegistrationService_Register_Success(t *testing.T) {
	users, events, _, dispatcher, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	member := users.seed("member@club.test", domain.RoleMember)
	event := events.seed(creator.ID)

	reg, err := svc.Register(context.Background(), claimFor(member.Email), event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.PaymentStatus != domain.PaymentPending {
		t.Errorf("initial payment status: want %q, got %q", domain.PaymentPending, reg.PaymentStatus)
	}
	if reg.QRCodeURL != "" {
		t.Error("qr url must be empty until the worker runs")
	}
	if len(dispatcher.jobs) != 1 {
		t.Fatalf("expected 1 artifact job, got %d", len(dispatcher.jobs))
	}
	job := dispatcher.jobs[0]
	if job.RegistrationID != reg.ID || job.EventID != event.ID || job.UserID != member.ID {
		t.Errorf("job fields wrong: %+v", job)
	}
}

func TestRegistrationService_Register_CreatesUserOnFirstSight(t *testing.T) {
	users, events, _, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	event := events.seed(creator.ID)

	reg, err := svc.Register(context.Background(), claimFor("fresh@club.test"), event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := users.GetByID(context.Background(), reg.UserID); err != nil {
		t.Errorf("registering caller must be persisted: %v", err)
	}
}

func TestRegistrationService_Register_EventNotFound(t *testing.T) {
	_, _, _, dispatcher, svc := newRegistrationFixture()

	_, err := svc.Register(context.Background(), claimFor("member@club.test"), "event-missing")
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if len(dispatcher.jobs) != 0 {
		t.Error("no job may be enqueued for a failed registration")
	}
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	users, events, _, dispatcher, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	member := users.seed("member@club.test", domain.RoleMember)
	event := events.seed(creator.ID)

	if _, err := svc.Register(context.Background(), claimFor(member.Email), event.ID); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), claimFor(member.Email), event.ID)
	if !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if len(dispatcher.jobs) != 1 {
		t.Errorf("duplicate attempt must not enqueue, got %d jobs", len(dispatcher.jobs))
	}
}

func TestRegistrationService_Get_OwnerHostAdmin(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	stranger := users.seed("stranger@club.test", domain.RoleMember)
	admin := users.seed("admin@club.test", domain.RoleAdmin)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	if _, err := svc.Get(context.Background(), claimFor(owner.Email), reg.ID); err != nil {
		t.Errorf("owner: %v", err)
	}
	if _, err := svc.Get(context.Background(), claimFor(creator.Email, domain.GroupHost), reg.ID); err != nil {
		t.Errorf("host: %v", err)
	}
	if _, err := svc.Get(context.Background(), claimFor(admin.Email), reg.ID); err != nil {
		t.Errorf("admin: %v", err)
	}
	if _, err := svc.Get(context.Background(), claimFor(stranger.Email), reg.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger: expected ErrForbidden, got %v", err)
	}
}

func TestRegistrationService_ListMine(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	member := users.seed("member@club.test", domain.RoleMember)
	other := users.seed("other@club.test", domain.RoleMember)
	e1 := events.seed(creator.ID)
	e2 := events.seed(creator.ID)
	regs.seed(e1.ID, member.ID)
	regs.seed(e2.ID, member.ID)
	regs.seed(e1.ID, other.ID)

	mine, err := svc.ListMine(context.Background(), claimFor(member.Email), 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 registrations, got %d", len(mine))
	}
}

func TestRegistrationService_ListByEvent_HostGated(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	member := users.seed("member@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	regs.seed(event.ID, member.ID)

	if _, err := svc.ListByEvent(context.Background(), claimFor(member.Email), event.ID, 0, 10); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("member: expected ErrForbidden, got %v", err)
	}
	listed, err := svc.ListByEvent(context.Background(), claimFor(creator.Email, domain.GroupHost), event.ID, 0, 10)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("expected 1 registration, got %d", len(listed))
	}
}

func TestRegistrationService_UpdatePayment(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	updated, err := svc.UpdatePayment(context.Background(), claimFor(creator.Email, domain.GroupHost), reg.ID, domain.PaymentCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PaymentStatus != domain.PaymentCompleted {
		t.Errorf("status: want %q, got %q", domain.PaymentCompleted, updated.PaymentStatus)
	}
}

// The registrant does not own their registration for mutation purposes;
// ownership is transitive through the event.
func TestRegistrationService_UpdatePayment_RegistrantForbidden(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	_, err := svc.UpdatePayment(context.Background(), claimFor(owner.Email), reg.ID, domain.PaymentCompleted)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRegistrationService_UpdatePayment_InvalidStatus(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	_, err := svc.UpdatePayment(context.Background(), claimFor(creator.Email, domain.GroupHost), reg.ID, "sponsored")
	if !errors.Is(err, domain.ErrInvalidPaymentStatus) {
		t.Errorf("expected ErrInvalidPaymentStatus, got %v", err)
	}
}

func TestRegistrationService_Checkin(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)
	claim := claimFor(creator.Email, domain.GroupHost)

	started, err := svc.MarkCheckinStart(context.Background(), claim, reg.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.CheckinStart == nil {
		t.Fatal("checkin_start not set")
	}

	ended, err := svc.MarkCheckinEnd(context.Background(), claim, reg.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if ended.CheckinEnd == nil {
		t.Fatal("checkin_end not set")
	}
	if ended.CheckinStart == nil {
		t.Error("checkin_end must not clear checkin_start")
	}
}

func TestRegistrationService_TicketURL(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)
	if err := regs.SetQRCodeURL(context.Background(), reg.ID, "https://blobs.test/"+ticketBucket+"/registrations/"+reg.ID+".png"); err != nil {
		t.Fatalf("seed qr url: %v", err)
	}

	url, err := svc.TicketURL(context.Background(), claimFor(owner.Email), reg.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://blobs.test/presigned/" + ticketBucket + "/registrations/" + reg.ID + ".png"
	if url != want {
		t.Errorf("ticket url: want %q, got %q", want, url)
	}
}

func TestRegistrationService_TicketURL_NotReady(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	_, err := svc.TicketURL(context.Background(), claimFor(owner.Email), reg.ID)
	if !errors.Is(err, domain.ErrTicketNotReady) {
		t.Fatalf("expected ErrTicketNotReady, got %v", err)
	}
}

func TestRegistrationService_TicketURL_StrangerForbidden(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	stranger := users.seed("stranger@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	_, err := svc.TicketURL(context.Background(), claimFor(stranger.Email), reg.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRegistrationService_Checkin_NonCreatorHostForbidden(t *testing.T) {
	users, events, regs, _, svc := newRegistrationFixture()
	creator := users.seed("creator@club.test", domain.RoleMember)
	otherHost := users.seed("other@club.test", domain.RoleMember)
	owner := users.seed("owner@club.test", domain.RoleMember)
	event := events.seed(creator.ID)
	reg := regs.seed(event.ID, owner.ID)

	_, err := svc.MarkCheckinStart(context.Background(), claimFor(otherHost.Email, domain.GroupHost), reg.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
