package variants

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testResolver() *Resolver {
	return New("btn", []Group{
		{Name: "intent", Options: map[string]string{"primary": "btn-primary", "neutral": "btn-neutral"}},
		{Name: "size", Options: map[string]string{"sm": "btn-sm", "md": "btn-md"}},
		{Name: "variant", Options: map[string]string{"outline": "btn-outline", "link": "btn-link"}},
		{Name: "isIconOnly", Options: map[string]string{"true": "aspect-square p-0"}},
	}, Selection{"intent": "neutral", "size": "md"})
}

func TestResolveAppliesDefaults(t *testing.T) {
	got := testResolver().Resolve(nil)
	if got != "btn btn-neutral btn-md" {
		t.Fatalf("unexpected classes %q", got)
	}
}

func TestResolveSelectionOverridesDefaults(t *testing.T) {
	got := testResolver().Resolve(Selection{"intent": "primary", "variant": "link"}, "mt-2")
	if got != "btn btn-primary btn-md btn-link mt-2" {
		t.Fatalf("unexpected classes %q", got)
	}
}

func TestResolveIgnoresUnknownValuesAndGroups(t *testing.T) {
	got := testResolver().Resolve(Selection{"intent": "bogus", "color": "red", "size": "sm"})
	if got != "btn btn-sm" {
		t.Fatalf("unexpected classes %q", got)
	}
}

func TestResolveBooleanGroup(t *testing.T) {
	r := testResolver()
	if got := r.Resolve(Selection{"isIconOnly": Bool(true)}); got != "btn btn-neutral btn-md aspect-square p-0" {
		t.Fatalf("unexpected classes %q", got)
	}
	if got := r.Resolve(Selection{"isIconOnly": Bool(false)}); got != "btn btn-neutral btn-md" {
		t.Fatalf("unexpected classes %q", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := testResolver()
	intents := []string{"", "primary", "neutral", "unknown"}
	sizes := []string{"", "sm", "md"}
	flavours := []string{"", "outline", "link"}
	for _, intent := range intents {
		for _, size := range sizes {
			for _, flavour := range flavours {
				sel := Selection{"intent": intent, "size": size, "variant": flavour}
				first := r.Resolve(sel, "  extra   class ")
				for i := 0; i < 5; i++ {
					if got := r.Resolve(sel, "extra class"); got != first {
						t.Fatalf("resolve(%v) not stable: %q vs %q", sel, first, got)
					}
				}
			}
		}
	}
}

func TestJoinNormalisesWhitespace(t *testing.T) {
	if got := Join("  a  b", "", "\tc\n"); got != "a b c" {
		t.Fatalf("unexpected join %q", got)
	}
}

func TestGroupsAndValues(t *testing.T) {
	r := testResolver()
	if diff := cmp.Diff([]string{"intent", "size", "variant", "isIconOnly"}, r.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"link", "outline"}, r.Values("variant")); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if value, ok := r.Default("size"); !ok || value != "md" {
		t.Fatalf("expected size default md, got %q (%v)", value, ok)
	}
}

func TestNilResolverReturnsExtras(t *testing.T) {
	var r *Resolver
	if got := r.Resolve(Selection{"intent": "primary"}, "a", "b"); got != "a b" {
		t.Fatalf("unexpected classes %q", got)
	}
}
