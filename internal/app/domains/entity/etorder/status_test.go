package etorder

import "testing"

// allStatuses 全量细粒度状态（含 cancelled）
var allStatuses = append(append([]Status{}, ForwardOrder...), StatusCancelled)

// expectedTransitions 转移表的独立副本，防止实现与断言共用一份数据
var expectedTransitions = map[Status]map[Status]bool{
	StatusPending:    {StatusPaid: true, StatusCancelled: true},
	StatusPaid:       {StatusToPickup: true, StatusCancelled: true},
	StatusToPickup:   {StatusPickedUp: true, StatusCancelled: true},
	StatusPickedUp:   {StatusSorting: true, StatusCancelled: true},
	StatusSorting:    {StatusWashing: true, StatusDrying: true, StatusIroning: true, StatusCancelled: true},
	StatusWashing:    {StatusDrying: true, StatusCancelled: true},
	StatusDrying:     {StatusIroning: true, StatusCancelled: true},
	StatusIroning:    {StatusPackaging: true, StatusCancelled: true},
	StatusPackaging:  {StatusReady: true, StatusDelivering: true, StatusCancelled: true},
	StatusReady:      {StatusDelivering: true, StatusCompleted: true, StatusCancelled: true},
	StatusDelivering: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// TestLegalityClosure 全量枚举 (from, to) 组合，逐对比对转移表
func TestLegalityClosure(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := expectedTransitions[from][to]
			got := from.CanTransitionTo(to)
			if got != want {
				t.Errorf("CanTransitionTo(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesHaveNoSuccessors(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if next := s.LegalNext(); len(next) != 0 {
			t.Errorf("%s should have no successors, got %v", s, next)
		}
		if _, ok := s.PreferredNext(); ok {
			t.Errorf("%s should have no preferred next", s)
		}
	}
}

// TestPreferredPathChain 首选单步表从 pending 一路走到 completed，且每步都在转移表内
func TestPreferredPathChain(t *testing.T) {
	cursor := StatusPending
	steps := 0
	for !cursor.IsTerminal() {
		next, ok := cursor.PreferredNext()
		if !ok {
			t.Fatalf("preferred path dead-ends at %s", cursor)
		}
		if !cursor.CanTransitionTo(next) {
			t.Fatalf("preferred hop %s -> %s is not in transition table", cursor, next)
		}
		cursor = next
		steps++
		if steps > len(ForwardOrder) {
			t.Fatal("preferred path does not terminate")
		}
	}
	if cursor != StatusCompleted {
		t.Errorf("preferred path ends at %s, want %s", cursor, StatusCompleted)
	}
	if steps != len(ForwardOrder)-1 {
		t.Errorf("preferred path length = %d, want %d", steps, len(ForwardOrder)-1)
	}
}

func TestInServiceSet(t *testing.T) {
	inServiceWant := map[Status]bool{
		StatusSorting: true, StatusWashing: true, StatusDrying: true,
		StatusIroning: true, StatusPackaging: true,
	}
	for _, s := range allStatuses {
		if got := s.IsInService(); got != inServiceWant[s] {
			t.Errorf("IsInService(%s) = %v, want %v", s, got, inServiceWant[s])
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, ok := ParseStatus("washing"); !ok {
		t.Error("washing should parse")
	}
	for _, raw := range []string{"", "WASHING", "processing", "unknown"} {
		if s, ok := ParseStatus(raw); ok {
			t.Errorf("ParseStatus(%q) = %s, want failure", raw, s)
		}
	}
}
