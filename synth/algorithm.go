package synth

const numOperators = 4

// An algorithm is a fixed routing graph among the four operators of a voice.
// modulators[i] lists the operators whose output feeds the phase input of
// operator i; carriers lists the operators that sum into the voice output.
// Connections always run from a higher-numbered operator to a lower-numbered
// one, so rendering operators from last to first evaluates every modulator
// before the operator it feeds. Operator 3 (the fourth) is the deepest
// modulator and the only one with self-feedback.
//
// Both Voice.Silent and Voice.Released derive audibility from the carriers
// list, so the two predicates can never disagree about which operators
// matter for a given algorithm.
type algorithm struct {
	modulators [numOperators][]int
	carriers   []int
}

var algorithms = [...]algorithm{
	// 0: single four-operator stack.
	{modulators: [numOperators][]int{0: {1}, 1: {2}, 2: {3}}, carriers: []int{0}},
	// 1: operators 3 and 4 both modulate 2, into 1.
	{modulators: [numOperators][]int{0: {1}, 1: {2, 3}}, carriers: []int{0}},
	// 2: two branches (2, and 3 modulated by 4) into carrier 1.
	{modulators: [numOperators][]int{0: {1, 2}, 2: {3}}, carriers: []int{0}},
	// 3: operators 2, 3 and 4 all modulate carrier 1.
	{modulators: [numOperators][]int{0: {1, 2, 3}}, carriers: []int{0}},
	// 4: two independent stacks, 2→1 and 4→3.
	{modulators: [numOperators][]int{0: {1}, 2: {3}}, carriers: []int{0, 2}},
	// 5: operator 4 modulates three parallel carriers.
	{modulators: [numOperators][]int{0: {3}, 1: {3}, 2: {3}}, carriers: []int{0, 1, 2}},
	// 6: plain carrier 1 next to the 4→3→2 stack.
	{modulators: [numOperators][]int{1: {2}, 2: {3}}, carriers: []int{0, 1}},
	// 7: plain carrier 1, operator 4 modulating carriers 2 and 3.
	{modulators: [numOperators][]int{1: {3}, 2: {3}}, carriers: []int{0, 1, 2}},
	// 8: three carriers, operator 4 modulating only the third.
	{modulators: [numOperators][]int{2: {3}}, carriers: []int{0, 1, 2}},
	// 9: operator 3 (driven by 4) modulates carriers 1 and 2.
	{modulators: [numOperators][]int{0: {2}, 1: {2}, 2: {3}}, carriers: []int{0, 1}},
	// 10: operator 4 modulates carrier 1, carriers 2 and 3 run clean.
	{modulators: [numOperators][]int{0: {3}}, carriers: []int{0, 1, 2}},
	// 11: all four operators in parallel, no modulation. Also the fallback
	// for unrecognized algorithm ids.
	{carriers: []int{0, 1, 2, 3}},
}

// NumAlgorithms is the count of selectable routing graphs.
const NumAlgorithms = len(algorithms)

func algorithmFor(id int) algorithm {
	if id < 0 || id >= len(algorithms) {
		return algorithms[len(algorithms)-1]
	}
	return algorithms[id]
}
