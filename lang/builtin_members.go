package lang

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"

	"github.com/ardnew/tuxedo/pattern"
	"github.com/ardnew/tuxedo/value"
)

// member is the parsed right-hand side of a member access.
type member struct {
	name   string
	args   string
	params []string
	body   string
	index  int
	call   bool
	lambda bool
}

// parseMember parses name, N, name(args), or name { params => body }.
func parseMember(s string) (member, bool) {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && s[0] != '+' {
		return member{index: n}, true
	}

	i := 0
	for i < len(s) && (s[i] == '_' || ('a' <= s[i] && s[i] <= 'z') ||
		('A' <= s[i] && s[i] <= 'Z') || (i > 0 && '0' <= s[i] && s[i] <= '9')) {
		i++
	}

	if i == 0 {
		return member{}, false
	}

	mem := member{name: s[:i], index: -1}

	rest := strings.TrimSpace(s[i:])
	if rest == "" {
		return mem, true
	}

	if args, ok := pattern.Enclosed(rest, '('); ok {
		mem.call, mem.args = true, args

		return mem, true
	}

	if inner, ok := pattern.Enclosed(rest, '{'); ok {
		params, body, found := pattern.Cut(inner, "=>")
		if !found {
			return member{}, false
		}

		mem.params = pattern.Split(params, ",")
		if len(mem.params) == 0 || !isParamList(params) {
			return member{}, false
		}

		mem.lambda, mem.body = true, strings.TrimSpace(body)

		return mem, true
	}

	return member{}, false
}

func isMember(s string) bool {
	_, ok := parseMember(s)

	return ok
}

func reduceMember(r *run, m *pattern.Match) (value.Value, bool) {
	mem, ok := parseMember(m.Get("member"))
	if !ok {
		return value.Empty(), false
	}

	recv, ok := r.operand(m, "recv")
	if !ok {
		return value.Empty(), false
	}

	var args []value.Value
	if mem.call {
		if args, ok = r.args(mem.args); !ok {
			return value.Empty(), false
		}
	}

	return r.member(recv, mem, args)
}

// member applies mem to recv.
func (r *run) member(
	recv value.Value,
	mem member,
	args []value.Value,
) (value.Value, bool) {
	if mem.index >= 0 {
		return indexMember(recv, mem.index)
	}

	if mem.name == "default" {
		if len(args) != 1 {
			return value.Empty(), false
		}

		if recv.IsEmpty() {
			return args[0], true
		}

		return recv, true
	}

	if mem.lambda {
		return r.lambdaMember(recv, mem)
	}

	switch recv.Kind() {
	case value.KindEmpty:
		return value.Empty(), true
	case value.KindText:
		s, _ := recv.AsText()

		return textMember(s, mem.name, args)
	case value.KindNumber:
		n, _ := recv.AsNumber()

		return numberMember(n, mem.name, args)
	case value.KindSequence:
		seq, _ := recv.AsSequence()

		return sequenceMember(seq, mem.name, args)
	case value.KindMapping:
		mp, _ := recv.AsMapping()

		return mappingMember(mp, mem, args)
	case value.KindDate:
		t, _ := recv.AsDate()

		return r.dateMember(t, mem.name, args)
	}

	return value.Empty(), false
}

// indexMember returns element n of a sequence, or Empty past its end.
func indexMember(recv value.Value, n int) (value.Value, bool) {
	switch recv.Kind() {
	case value.KindSequence:
		seq, _ := recv.AsSequence()
		if n < len(seq) {
			return seq[n], true
		}

		return value.Empty(), true

	case value.KindMapping:
		mp, _ := recv.AsMapping()
		v, _ := mp.Get(strconv.Itoa(n))

		return v, true

	case value.KindEmpty:
		return value.Empty(), true
	}

	return value.Empty(), false
}

// lambdaMember implements .map and .filter. The lambda runs in a pushed scope
// binding its parameters.
func (r *run) lambdaMember(recv value.Value, mem member) (value.Value, bool) {
	r.c.Push()
	defer r.c.Pop()

	switch recv.Kind() {
	case value.KindSequence:
		if len(mem.params) != 1 {
			return value.Empty(), false
		}

		seq, _ := recv.AsSequence()
		out := make([]value.Value, 0, len(seq))

		for _, item := range seq {
			r.c.Set(mem.params[0], item)

			v, ok := r.eval(mem.body)

			switch mem.name {
			case "map":
				if ok {
					out = append(out, v)
				}
			case "filter":
				if b, isBool := v.AsBool(); ok && isBool && b {
					out = append(out, item)
				}
			default:
				return value.Empty(), false
			}
		}

		return value.FromSequence(out), true

	case value.KindMapping:
		if mem.name != "filter" || len(mem.params) != 2 {
			return value.Empty(), false
		}

		mp, _ := recv.AsMapping()
		out := value.NewMapping()

		for k, v := range mp.All() {
			r.c.Set(mem.params[0], value.FromText(k))
			r.c.Set(mem.params[1], v)

			res, ok := r.eval(mem.body)
			if b, isBool := res.AsBool(); ok && isBool && b {
				out.Set(k, v)
			}
		}

		return value.FromMapping(out), true
	}

	return value.Empty(), false
}

func textMember(s, name string, args []value.Value) (value.Value, bool) {
	if len(args) == 0 {
		if f, ok := textMethods[name]; ok {
			return value.FromText(f(s)), true
		}
	}

	switch name {
	case "length":
		return value.FromInt(len([]rune(s))), true

	case "split":
		if len(args) != 1 {
			return value.Empty(), false
		}

		sep, ok := args[0].AsText()
		if !ok {
			return value.Empty(), false
		}

		var seq []value.Value

		for part := range strings.SplitSeq(s, sep) {
			if part != "" {
				seq = append(seq, value.FromText(part))
			}
		}

		return value.FromSequence(seq), true
	}

	return value.Empty(), false
}

func numberMember(n float64, name string, args []value.Value) (value.Value, bool) {
	if len(args) != 0 {
		return value.Empty(), false
	}

	switch name {
	case "abs":
		return value.FromNumber(math.Abs(n)), true
	case "round":
		return value.FromNumber(math.Round(n)), true
	case "floor":
		return value.FromNumber(math.Floor(n)), true
	case "ceil":
		return value.FromNumber(math.Ceil(n)), true
	case "commas":
		return value.FromText(humanize.Commaf(n)), true
	case "bytes":
		if n < 0 {
			return value.Empty(), false
		}

		return value.FromText(humanize.Bytes(uint64(n))), true
	case "ordinal":
		return value.FromText(humanize.Ordinal(int(n))), true
	}

	return value.Empty(), false
}

func sequenceMember(seq []value.Value, name string, args []value.Value) (value.Value, bool) {
	switch name {
	case "join":
		if len(args) != 1 {
			return value.Empty(), false
		}

		sep, ok := args[0].AsText()
		if !ok {
			return value.Empty(), false
		}

		parts := make([]string, len(seq))
		for i, v := range seq {
			parts[i] = v.String()
		}

		return value.FromText(strings.Join(parts, sep)), true

	case "merge":
		if len(args) != 1 {
			return value.Empty(), false
		}

		other, ok := args[0].AsSequence()
		if !ok {
			return value.Empty(), false
		}

		return value.FromSequence(slices.Concat(seq, other)), true
	}

	if len(args) != 0 {
		return value.Empty(), false
	}

	switch name {
	case "count":
		return value.FromInt(len(seq)), true

	case "first":
		if len(seq) == 0 {
			return value.Empty(), true
		}

		return seq[0], true

	case "last":
		if len(seq) == 0 {
			return value.Empty(), true
		}

		return seq[len(seq)-1], true

	case "sort":
		out := slices.Clone(seq)
		slices.SortStableFunc(out, value.Compare)

		return value.FromSequence(out), true

	case "reverse":
		out := slices.Clone(seq)
		slices.Reverse(out)

		return value.FromSequence(out), true
	}

	nums, ok := numbers(seq)
	if !ok {
		return value.Empty(), false
	}

	return aggregate(name, nums)
}

// mappingMember looks up a key first, then the mapping methods.
func mappingMember(mp *value.Mapping, mem member, args []value.Value) (value.Value, bool) {
	if !mem.call {
		if v, ok := mp.Get(mem.name); ok {
			return v, true
		}
	}

	if len(args) != 0 {
		return value.Empty(), false
	}

	switch mem.name {
	case "count":
		return value.FromInt(mp.Len()), true

	case "keys":
		keys := mp.SortedKeys()

		seq := make([]value.Value, len(keys))
		for i, k := range keys {
			seq[i] = value.FromText(k)
		}

		return value.FromSequence(seq), true

	case "values":
		return value.FromSequence(mappingValues(mp)), true
	}

	if mem.call {
		return value.Empty(), false
	}

	return value.Empty(), true
}

// mappingValues returns the values of mp, sorted when they are all numbers or
// all texts and in key order otherwise.
func mappingValues(mp *value.Mapping) []value.Value {
	keys := mp.SortedKeys()
	vals := make([]value.Value, len(keys))

	for i, k := range keys {
		vals[i], _ = mp.Get(k)
	}

	uniform := len(vals) > 0 && !slices.ContainsFunc(vals, func(v value.Value) bool {
		return v.Kind() != vals[0].Kind()
	})

	if uniform && (vals[0].Kind() == value.KindNumber || vals[0].Kind() == value.KindText) {
		slices.SortStableFunc(vals, value.Compare)
	}

	return vals
}

func (r *run) dateMember(t time.Time, name string, args []value.Value) (value.Value, bool) {
	switch name {
	case "format", "strftime":
		if len(args) != 1 {
			return value.Empty(), false
		}

		layout, ok := args[0].AsText()
		if !ok {
			return value.Empty(), false
		}

		if name == "strftime" {
			return value.FromText(strftime.Format(layout, t)), true
		}

		return value.FromText(ldmlFormat(t, layout)), true
	}

	if len(args) != 0 {
		return value.Empty(), false
	}

	switch name {
	case "ago":
		return value.FromText(humanize.RelTime(t, r.e.clock(), "ago", "from now")), true
	case "year":
		return value.FromInt(t.Year()), true
	case "month":
		return value.FromInt(int(t.Month())), true
	case "day":
		return value.FromInt(t.Day()), true
	case "unix":
		return value.FromNumber(float64(t.Unix())), true
	}

	return value.Empty(), false
}

// numbers returns seq as float64s when every element is a number.
func numbers(seq []value.Value) ([]float64, bool) {
	out := make([]float64, len(seq))

	for i, v := range seq {
		n, ok := v.AsNumber()
		if !ok {
			return nil, false
		}

		out[i] = n
	}

	return out, true
}

// aggregate implements min, max, sum, and avg. The minimum and maximum of no
// numbers are Empty.
func aggregate(name string, nums []float64) (value.Value, bool) {
	switch name {
	case "min":
		if len(nums) == 0 {
			return value.Empty(), true
		}

		return value.FromNumber(slices.Min(nums)), true

	case "max":
		if len(nums) == 0 {
			return value.Empty(), true
		}

		return value.FromNumber(slices.Max(nums)), true

	case "sum":
		var sum float64
		for _, n := range nums {
			sum += n
		}

		return value.FromNumber(sum), true

	case "avg":
		if len(nums) == 0 {
			return value.Empty(), true
		}

		var sum float64
		for _, n := range nums {
			sum += n
		}

		return value.FromNumber(sum / float64(len(nums))), true
	}

	return value.Empty(), false
}

// Methods returns the names of the builtin members of all value kinds in
// ascending order.
func Methods() []string {
	names := []string{
		"abs", "ago", "avg", "bytes", "ceil", "commas", "count", "day",
		"filter", "first", "floor", "format", "join", "keys", "last", "length",
		"map", "max", "merge", "min", "month", "ordinal", "reverse", "round",
		"sort", "split", "strftime", "sum", "unix", "values", "year",
	}

	for name := range textMethods {
		names = append(names, name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}
