package nstance

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
)

type node interface {
	Next() node
}

type chainNode struct {
	next node
}

func (c *chainNode) Next() node { return c.next }

// chain registers n descriptors where node i depends on node i+1.  When
// closed, the last node depends on the first.
func chain(n int, closed bool) ([]ServiceIdentifier[node], *ServiceCollection) {
	ids := make([]ServiceIdentifier[node], n)
	for i := range ids {
		ids[i] = NewIdentifier[node]("node" + strconv.Itoa(i))
	}
	services := NewServiceCollection()
	for i := range ids {
		var ctor *Constructor
		var err error
		if i == n-1 && !closed {
			ctor, err = NewConstructor(func() *chainNode { return &chainNode{} })
		} else {
			ctor, err = NewConstructor(func(next node) *chainNode {
				return &chainNode{next: next}
			}, Inject(ids[(i+1)%n]))
		}
		if err != nil {
			panic(err)
		}
		services.Set(ids[i], NewDescriptor(ctor))
	}
	return ids, services
}

func TestResolutionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("cycles fail from every entry point and memoize nothing", prop.ForAll(
		func(n int, start int) bool {
			ids, services := chain(n, true)
			s := New(services)
			first := ids[start%n]
			for attempt := 0; attempt < 2; attempt++ {
				_, err := s.GetInstance(first)
				var ce *CyclicDependencyError
				if !errors.As(err, &ce) {
					return false
				}
				if len(ce.Path) != n+1 ||
					ce.Path[0].code() != first.code() ||
					ce.Path[n].code() != first.code() {
					return false
				}
			}
			for _, id := range ids {
				if v, _ := services.Get(id); !isDescriptor(v) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(0, 7),
	))

	properties.Property("acyclic chains resolve to shared singletons", prop.ForAll(
		func(n int) bool {
			ids, services := chain(n, false)
			s := New(services)
			head, err := GetService(s, ids[0])
			if err != nil {
				return false
			}
			again, err := GetService(s, ids[0])
			if err != nil || again != head {
				return false
			}
			cur := head
			for i, id := range ids {
				if v, _ := services.Get(id); isDescriptor(v) {
					return false
				}
				got, err := GetService(s, id)
				if err != nil || got != cur {
					return false
				}
				if i < n-1 {
					cur = cur.Next()
				}
			}
			return cur.Next() == nil
		},
		gen.IntRange(1, 8),
	))

	properties.Property("set reports what was there before", prop.ForAll(
		func(ops []int) bool {
			ids := []Identifier{iService1, iService2, iService3}
			services := NewServiceCollection()
			model := make(map[int]any)
			for step, op := range ops {
				slot := op % len(ids)
				var value any
				if op >= len(ids) {
					value = &service3{s: strconv.Itoa(step)}
				}
				want, wantExisted := model[slot]
				previous, existed := services.Set(ids[slot], value)
				if existed != wantExisted || previous != want {
					return false
				}
				model[slot] = value
				if !services.Has(ids[slot]) {
					return false
				}
			}
			return services.Len() == len(model)
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}

func isDescriptor(v any) bool {
	_, ok := v.(*ServiceDescriptor)
	return ok
}
