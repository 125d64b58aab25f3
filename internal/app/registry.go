package app

// Component names registered by New, in the order they are built.
const (
	ComponentConfig          = "config"
	ComponentLogger          = "logger"
	ComponentDatabase        = "database"
	ComponentDemoRepository  = "demoRepository"
	ComponentCountCache      = "countCache"
	ComponentHelloService    = "helloService"
	ComponentUser            = "user"
	ComponentHelloController = "helloController"
	ComponentHomeServer      = "homeServer"
)

// Registry is an ordered set of component names. It is filled while the
// application is built and only read afterwards.
type Registry struct {
	names []string
	index map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]struct{})}
}

// Register adds name once; later duplicates are ignored.
func (r *Registry) Register(name string) {
	if _, ok := r.index[name]; ok {
		return
	}
	r.index[name] = struct{}{}
	r.names = append(r.names, name)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns a copy of the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
