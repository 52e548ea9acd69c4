package visibility

import (
	"encoding/json"
	"fmt"

	"business_selector/domain/entities"
)

// shownScript evaluates to true when the first match of %s is rendered visibly
const shownScript = `(function () {
	var el;
	try {
		el = document.querySelector(%s);
	} catch (e) {
		return null;
	}
	if (!el) {
		return false;
	}
	var style = window.getComputedStyle(el);
	if (style.visibility === 'hidden') {
		return false;
	}
	return !!(el.offsetWidth || el.offsetHeight || el.getClientRects().length);
})()`

// ConditionScript - builds the JS expression a session polls while waiting.
// Hidden accepts both removal from the DOM and hiding.
func ConditionScript(selector string, expect entities.Visibility) string {
	quoted, _ := json.Marshal(selector)
	shown := fmt.Sprintf(shownScript, quoted)

	if expect == entities.Hidden {
		return "(" + shown + " === false)"
	}
	return "(" + shown + " === true)"
}

// NewCondition - builds the full wait condition for selector
func NewCondition(selector string, expect entities.Visibility) entities.WaitCondition {
	return entities.WaitCondition{
		Selector: selector,
		Expect:   expect,
		Script:   ConditionScript(selector, expect),
	}
}
