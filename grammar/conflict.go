package grammar

// resolveLexAction decides whether newAct takes the place of oldAct when both
// apply at the same point of a lex state. The function is pure; callers apply
// its verdict.
//
// Between two accepts, the higher precedence wins, and at equal precedence the
// token declared earlier wins. Between an advance and an accept, the advance
// wins when the precedences still reachable through it can match the accept,
// or when it continues an ordinary match attempt; an advance that only
// continues inter-token separators always yields to a real accept because the
// separator sentinel fails both conditions.
func resolveLexAction(newAct, oldAct lexAction) bool {
	if oldAct.typ == LexActionTypeError {
		return true
	}
	if newAct.typ == LexActionTypeError {
		return false
	}

	switch newAct.typ {
	case LexActionTypeAccept:
		switch oldAct.typ {
		case LexActionTypeAccept:
			if newAct.sym == oldAct.sym {
				return false
			}
			if newAct.precedence != oldAct.precedence {
				return newAct.precedence > oldAct.precedence
			}
			return newAct.sym.Num() < oldAct.sym.Num()
		case LexActionTypeAdvance:
			return !advanceBeatsAccept(oldAct, newAct)
		}
	case LexActionTypeAdvance:
		switch oldAct.typ {
		case LexActionTypeAccept:
			return advanceBeatsAccept(newAct, oldAct)
		case LexActionTypeAdvance:
			// Advances never compete; their character sets are disjoint.
			return false
		}
	}
	return false
}

func advanceBeatsAccept(adv, acc lexAction) bool {
	max := 0
	if adv.precRange.Set {
		max = adv.precRange.Max
	}
	return max >= acc.precedence || max >= 0
}
