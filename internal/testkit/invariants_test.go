package testkit

import (
	"context"
	"testing"

	"cbridge/cnode"
)

const rangesSample = `typedef struct point { int x, y; } point_t;
enum color { RED, GREEN = 3 };
static int sum(const point_t *p, int n) {
    int total = 0;
    for (int i = 0; i < n; i++) {
        total += p[i].x * p[i].y;
    }
    switch (total) {
    case 0: return -1;
    default: break;
    }
    return total > 0 ? total : (int)sizeof(point_t);
}
`

func TestRangesNest(t *testing.T) {
	u, err := cnode.ParseSource(context.Background(), "ranges.c", []byte(rangesSample))
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	defer u.Close()

	if err := CheckRanges(u.Decl()); err != nil {
		t.Fatal(err)
	}
	if err := CheckLocations(u.Decl()); err != nil {
		t.Fatal(err)
	}
}
