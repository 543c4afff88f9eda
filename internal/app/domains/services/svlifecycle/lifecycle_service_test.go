package svlifecycle

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/domains/modules/mdorder"
	"lss/backend/internal/app/domains/repo/rporder"
	"lss/backend/internal/app/domains/services/svnotify"
	"lss/backend/internal/app/pkg/errorx"
	"lss/backend/internal/app/pkg/logger"
)

// memRepo 内存仓储（单测用），读写均做深拷贝，模拟真实仓储的快照语义
type memRepo struct {
	mu        sync.Mutex
	orders    map[string]*etorder.Order
	saveCalls int
	// failSaveAt 第 N 次 Save 调用返回错误，0 表示不注入
	failSaveAt int
}

var _ rporder.OrderRepository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{orders: make(map[string]*etorder.Order)}
}

func cloneOrder(o *etorder.Order) *etorder.Order {
	c := *o
	c.StatusHistory = append([]etorder.StatusRecord(nil), o.StatusHistory...)
	c.Items = append([]etorder.Item(nil), o.Items...)
	if o.Amounts != nil {
		a := *o.Amounts
		c.Amounts = &a
	}
	if o.Address != nil {
		addr := *o.Address
		c.Address = &addr
	}
	return &c
}

func (r *memRepo) Create(ctx context.Context, order *etorder.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; ok {
		return errorx.ErrDuplicateOrder
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, errorx.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *memRepo) GetByOrderNo(ctx context.Context, orderNo string) (*etorder.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.OrderNo == orderNo {
			return cloneOrder(order), nil
		}
	}
	return nil, errorx.ErrOrderNotFound
}

func (r *memRepo) GetByPickupCode(ctx context.Context, pickupCode string) (*etorder.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if !order.Status.IsTerminal() && strings.EqualFold(order.PickupCode, pickupCode) {
			return cloneOrder(order), nil
		}
	}
	return nil, errorx.ErrOrderNotFound
}

func (r *memRepo) Save(ctx context.Context, order *etorder.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.failSaveAt > 0 && r.saveCalls == r.failSaveAt {
		return errors.New("injected save failure")
	}
	if _, ok := r.orders[order.ID]; !ok {
		return errorx.ErrOrderNotFound
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memRepo) List(ctx context.Context, userID int64, page, limit int) ([]*etorder.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*etorder.Order
	for _, order := range r.orders {
		if userID != 0 && order.UserID != userID {
			continue
		}
		out = append(out, cloneOrder(order))
	}
	return out, int64(len(out)), nil
}

// mustGet 直接读仓储中的当前快照（断言用）
func (r *memRepo) mustGet(t *testing.T, orderID string) *etorder.Order {
	t.Helper()
	order, err := r.GetByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("GetByID(%s): %v", orderID, err)
	}
	return order
}

type fakeLocker struct {
	denied   bool
	acquired int
	released int
}

func (l *fakeLocker) AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (func(), bool, error) {
	if l.denied {
		return nil, false, nil
	}
	l.acquired++
	return func() { l.released++ }, true, nil
}

type recordNotifier struct {
	mu   sync.Mutex
	sent []svnotify.StatusNotification
}

func (n *recordNotifier) Notify(notification svnotify.StatusNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordNotifier) all() []svnotify.StatusNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]svnotify.StatusNotification(nil), n.sent...)
}

type fixture struct {
	svc      *Service
	repo     *memRepo
	locker   *fakeLocker
	notifier *recordNotifier
	clock    time.Time
}

func newFixture(t *testing.T, relaxed bool) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newMemRepo(),
		locker:   &fakeLocker{},
		notifier: &recordNotifier{},
		clock:    time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(mdorder.NewOrderModule(f.repo), f.locker, f.notifier, logger.NopLogger{}, relaxed)
	f.svc.WithClock(func() time.Time { return f.clock })
	return f
}

// seedOrder 造一个处于目标状态的订单：从 pending 沿首选单步表推进到位后入库
func (f *fixture) seedOrder(t *testing.T, target etorder.Status) *etorder.Order {
	t.Helper()
	order, err := etorder.NewOrder("ord-1", "LS20260314000001", "AK3507", 1001,
		[]etorder.Item{{Name: "风衣", Category: "干洗", Quantity: 1, Price: 4500}},
		&etorder.Amounts{Subtotal: 4500, Total: 4500},
		&etorder.Address{ContactName: "王女士", Phone: "13800000000", Street: "科技园南路10号", City: "深圳"},
		f.clock.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	seedAt := f.clock.Add(-time.Hour)
	for order.Status != target {
		next := target
		if target != etorder.StatusCancelled {
			var ok bool
			next, ok = order.Status.PreferredNext()
			if !ok {
				t.Fatalf("no preferred path from %s to %s", order.Status, target)
			}
		}
		if err := order.ApplyTransition(next, "seed", seedAt, etorder.TransitionOptions{}); err != nil {
			t.Fatalf("seed transition %s: %v", next, err)
		}
	}
	if err := f.repo.Create(context.Background(), order); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return order
}

func TestApplyTransitionCommitsAndNotifies(t *testing.T) {
	f := newFixture(t, false)
	seeded := f.seedOrder(t, etorder.StatusPaid)

	order, err := f.svc.ApplyTransition(context.Background(), seeded.ID, etorder.StatusToPickup, "op-9", TransitionOptions{Remark: "师傅已接单"})
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if order.Status != etorder.StatusToPickup {
		t.Errorf("status = %s, want %s", order.Status, etorder.StatusToPickup)
	}

	persisted := f.repo.mustGet(t, seeded.ID)
	if persisted.Status != etorder.StatusToPickup {
		t.Errorf("persisted status = %s, want %s", persisted.Status, etorder.StatusToPickup)
	}
	if got, want := len(persisted.StatusHistory), len(seeded.StatusHistory)+1; got != want {
		t.Errorf("history length = %d, want %d", got, want)
	}
	last := persisted.StatusHistory[len(persisted.StatusHistory)-1]
	if last.Operator != "op-9" || last.Remark != "师傅已接单" {
		t.Errorf("last history record = %+v", last)
	}

	sent := f.notifier.all()
	if len(sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(sent))
	}
	if sent[0].From != etorder.StatusPaid || sent[0].To != etorder.StatusToPickup {
		t.Errorf("notification hop = %s->%s", sent[0].From, sent[0].To)
	}
	if sent[0].OperatorCoarse != etorder.CoarseProcessing {
		t.Errorf("notification operator coarse = %s, want %s", sent[0].OperatorCoarse, etorder.CoarseProcessing)
	}

	if f.locker.acquired != 1 || f.locker.released != 1 {
		t.Errorf("lock acquired=%d released=%d, want 1/1", f.locker.acquired, f.locker.released)
	}
}

func TestApplyTransitionOrderNotFound(t *testing.T) {
	f := newFixture(t, false)
	if _, err := f.svc.ApplyTransition(context.Background(), "missing", etorder.StatusPaid, "op", TransitionOptions{}); !errors.Is(err, errorx.ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestApplyTransitionExpectedCurrentConflict(t *testing.T) {
	f := newFixture(t, false)
	seeded := f.seedOrder(t, etorder.StatusPaid)

	_, err := f.svc.ApplyTransition(context.Background(), seeded.ID, etorder.StatusToPickup, "op", TransitionOptions{ExpectedCurrent: etorder.StatusPending})
	if !errors.Is(err, errorx.ErrStatusConflict) {
		t.Fatalf("err = %v, want ErrStatusConflict", err)
	}

	persisted := f.repo.mustGet(t, seeded.ID)
	if persisted.Status != etorder.StatusPaid {
		t.Errorf("persisted status = %s, order mutated on conflict", persisted.Status)
	}
	if f.repo.saveCalls != 0 {
		t.Errorf("saveCalls = %d, want 0", f.repo.saveCalls)
	}
}

func TestApplyTransitionLockDenied(t *testing.T) {
	f := newFixture(t, false)
	seeded := f.seedOrder(t, etorder.StatusPaid)
	f.locker.denied = true

	if _, err := f.svc.ApplyTransition(context.Background(), seeded.ID, etorder.StatusToPickup, "op", TransitionOptions{}); !errors.Is(err, errorx.ErrOrderLocked) {
		t.Errorf("err = %v, want ErrOrderLocked", err)
	}
}

func TestApplyTransitionTerminalFrozen(t *testing.T) {
	f := newFixture(t, false)
	seeded := f.seedOrder(t, etorder.StatusCompleted)

	for _, target := range []etorder.Status{etorder.StatusPaid, etorder.StatusDelivering, etorder.StatusCancelled} {
		_, err := f.svc.ApplyTransition(context.Background(), seeded.ID, target, "op", TransitionOptions{})
		var frozen *etorder.TerminalStateFrozenError
		if !errors.As(err, &frozen) {
			t.Errorf("target %s: err = %v, want TerminalStateFrozenError", target, err)
		}
	}

	persisted := f.repo.mustGet(t, seeded.ID)
	if persisted.Status != etorder.StatusCompleted {
		t.Errorf("persisted status = %s, terminal order mutated", persisted.Status)
	}
	if got, want := len(persisted.StatusHistory), len(seeded.StatusHistory); got != want {
		t.Errorf("history length = %d, want %d", got, want)
	}
}

func TestConfirmPickupWrongCode(t *testing.T) {
	f := newFixture(t, false)
	seeded := f.seedOrder(t, etorder.StatusToPickup)

	_, err := f.svc.ConfirmPickup(context.Background(), seeded.ID, "ZZ9999", "op-3")
	if !errors.Is(err, etorder.ErrPickupCodeMismatch) {
		t.Fatalf("err = %v, want ErrPickupCodeMismatch", err)
	}
	// 错误信息不能回显正确取件码
	if strings.Contains(err.Error(), seeded.PickupCode) {
		t.Errorf("error leaks pickup code: %v", err)
	}

	persisted := f.repo.mustGet(t, seeded.ID)
	if persisted.Status != etorder.StatusToPickup {
		t.Errorf("persisted status = %s, mutated on mismatch", persisted.Status)
	}
	if got, want := len(persisted.StatusHistory), len(seeded.StatusHistory); got != want {
		t.Errorf("history length = %d, want %d", got, want)
	}
	if len(f.notifier.all()) != 0 {
		t.Errorf("notifications sent on mismatch")
	}
}

func TestConfirmPickupCaseInsensitive(t *testing.T) {
	f := newFixture(t, false)
	seeded := f.seedOrder(t, etorder.StatusToPickup)

	order, err := f.svc.ConfirmPickup(context.Background(), seeded.ID, "ak3507", "op-3")
	if err != nil {
		t.Fatalf("ConfirmPickup: %v", err)
	}
	if order.Status != etorder.StatusPickedUp {
		t.Errorf("status = %s, want %s", order.Status, etorder.StatusPickedUp)
	}
	last := order.StatusHistory[len(order.StatusHistory)-1]
	if last.Remark != "pickup confirmed by code" {
		t.Errorf("remark = %q", last.Remark)
	}
}

func TestTakeByPickupCode(t *testing.T) {
	f := newFixture(t, false)
	f.seedOrder(t, etorder.StatusToPickup)

	order, err := f.svc.TakeByPickupCode(context.Background(), "AK3507", "op-5")
	if err != nil {
		t.Fatalf("TakeByPickupCode: %v", err)
	}
	if order.Status != etorder.StatusPickedUp {
		t.Errorf("status = %s, want %s", order.Status, etorder.StatusPickedUp)
	}

	if _, err := f.svc.TakeByPickupCode(context.Background(), "XX0000", "op-5"); !errors.Is(err, errorx.ErrOrderNotFound) {
		t.Errorf("unknown code err = %v, want ErrOrderNotFound", err)
	}
}

func TestRelaxedModeSkipsTable(t *testing.T) {
	f := newFixture(t, true)
	seeded := f.seedOrder(t, etorder.StatusPaid)

	order, err := f.svc.ApplyTransition(context.Background(), seeded.ID, etorder.StatusDrying, "op", TransitionOptions{})
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if order.Status != etorder.StatusDrying {
		t.Errorf("status = %s, want %s", order.Status, etorder.StatusDrying)
	}
}

func TestRelaxedModeKeepsTerminalFreeze(t *testing.T) {
	f := newFixture(t, true)
	seeded := f.seedOrder(t, etorder.StatusCancelled)

	_, err := f.svc.ApplyTransition(context.Background(), seeded.ID, etorder.StatusPaid, "op", TransitionOptions{})
	var frozen *etorder.TerminalStateFrozenError
	if !errors.As(err, &frozen) {
		t.Errorf("err = %v, want TerminalStateFrozenError", err)
	}
}
