package passport

import "strings"

// Parameter is one technical characteristic taken from a passport.
type Parameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// String renders the parameter as "name — value unit".
func (p Parameter) String() string {
	s := p.Name + " — " + p.Value
	if p.Unit != "" {
		s += " " + p.Unit
	}
	return s
}

// TechnicalData is an insertion-ordered set of parameters keyed by name.
// Setting an existing name replaces its value but keeps its position.
type TechnicalData struct {
	order  []string
	params map[string]Parameter
}

// NewTechnicalData returns an empty parameter set.
func NewTechnicalData() *TechnicalData {
	return &TechnicalData{params: make(map[string]Parameter)}
}

// Set stores a parameter.
func (d *TechnicalData) Set(name, value, unit string) {
	if d.params == nil {
		d.params = make(map[string]Parameter)
	}
	if _, ok := d.params[name]; !ok {
		d.order = append(d.order, name)
	}
	d.params[name] = Parameter{Name: name, Value: value, Unit: unit}
}

// Get returns the parameter stored under name.
func (d *TechnicalData) Get(name string) (Parameter, bool) {
	if d == nil {
		return Parameter{}, false
	}
	p, ok := d.params[name]
	return p, ok
}

// Delete removes a parameter.
func (d *TechnicalData) Delete(name string) {
	if d == nil {
		return
	}
	if _, ok := d.params[name]; !ok {
		return
	}
	delete(d.params, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of parameters.
func (d *TechnicalData) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Parameters returns the parameters in insertion order.
func (d *TechnicalData) Parameters() []Parameter {
	if d == nil {
		return nil
	}
	out := make([]Parameter, 0, len(d.order))
	for _, n := range d.order {
		out = append(out, d.params[n])
	}
	return out
}

// First returns up to n parameters in insertion order.
func (d *TechnicalData) First(n int) []Parameter {
	params := d.Parameters()
	if len(params) > n {
		params = params[:n]
	}
	return params
}

// RemoveImpactZone drops the impact/landing area parameter, which does not
// belong in a strength calculation.
func (d *TechnicalData) RemoveImpactZone() {
	for _, p := range d.Parameters() {
		if isImpactZone(p.Name) {
			d.Delete(p.Name)
		}
	}
}

func isImpactZone(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "зон") &&
		(strings.Contains(n, "приземлен") || strings.Contains(n, "удар"))
}
