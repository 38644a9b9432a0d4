package nstance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type IService1 interface {
	C() int
}

type IService2 interface {
	D() bool
}

type IService3 interface {
	S() string
}

type IDependentService interface {
	Name() string
}

var (
	iService1         = NewIdentifier[IService1]("service1")
	iService2         = NewIdentifier[IService2]("service2")
	iService3         = NewIdentifier[IService3]("service3")
	iDependentService = NewIdentifier[IDependentService]("dependentService")
)

type service1 struct{ c int }

func (s *service1) C() int { return s.c }

type service2 struct{ d bool }

func (s *service2) D() bool { return s.d }

type service3 struct{ s string }

func (s *service3) S() string { return s.s }

type dependentService struct {
	name string
	s1   IService1
}

func (d *dependentService) Name() string { return d.name }

type target1Dep struct {
	s1 IService1
}

type target2Dep struct {
	s1 IService1
	s2 IService2
}

type targetWithStaticParam struct {
	v  bool
	s1 IService1
}

type targetOptional struct {
	s1 IService1
	s2 IService2
}

type dependentServiceTarget struct {
	d IDependentService
}

type dependentServiceTarget2 struct {
	d  IDependentService
	s1 IService1
}

type serviceLoop1 struct {
	service1
	s2 IService2
}

type serviceLoop2 struct {
	service2
	s1 IService1
}

var (
	newService1 = Declare(func() *service1 { return &service1{c: 1} })
	newService2 = Declare(func() *service2 { return &service2{d: true} })
	newService3 = Declare(func() *service3 { return &service3{s: "farboo"} })

	newDependentService = Declare(func(s1 IService1) *dependentService {
		return &dependentService{name: "farboo", s1: s1}
	}, Inject(iService1))

	newTarget1Dep = Declare(func(s1 IService1) *target1Dep {
		return &target1Dep{s1: s1}
	}, Inject(iService1))

	newTarget2Dep = Declare(func(s1 IService1, s2 IService2) *target2Dep {
		return &target2Dep{s1: s1, s2: s2}
	}, Inject(iService1), Inject(iService2))

	newTargetWithStaticParam = Declare(func(v bool, s1 IService1) *targetWithStaticParam {
		return &targetWithStaticParam{v: v, s1: s1}
	}, Arg(), Inject(iService1))

	newTargetOptional = Declare(func(s1 IService1, s2 IService2) *targetOptional {
		return &targetOptional{s1: s1, s2: s2}
	}, Inject(iService1), Optional(iService2))

	newDependentServiceTarget = Declare(func(d IDependentService) *dependentServiceTarget {
		return &dependentServiceTarget{d: d}
	}, Inject(iDependentService))

	newDependentServiceTarget2 = Declare(func(d IDependentService, s1 IService1) *dependentServiceTarget2 {
		return &dependentServiceTarget2{d: d, s1: s1}
	}, Inject(iDependentService), Inject(iService1))

	newServiceLoop1 = Declare(func(s2 IService2) *serviceLoop1 {
		return &serviceLoop1{service1: service1{c: 1}, s2: s2}
	}, Inject(iService2))

	newServiceLoop2 = Declare(func(s1 IService1) *serviceLoop2 {
		return &serviceLoop2{service2: service2{d: true}, s1: s1}
	}, Inject(iService1))
)

func requireService1(t *testing.T, v any) {
	require.NotNil(t, v)
	s1, ok := v.(IService1)
	require.True(t, ok, "%T is not an IService1", v)
	assert.Equal(t, 1, s1.C())
}
