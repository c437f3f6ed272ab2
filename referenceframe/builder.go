package referenceframe

import (
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/kinemodel/logging"
	"go.viam.com/kinemodel/utils"
)

// NewRobot assembles links and joints into a frozen kinematic tree. The supplied entities are copied,
// never modified, and on failure no part of the model is returned. Resolution problems are reported
// before structural ones; within a stage every problem found is returned together.
func NewRobot(name string, links []*Link, joints []*Joint, logger logging.Logger) (*Robot, error) {
	logger = logger.Sublogger("builder")

	res, err := resolveReferences(links, joints)
	if err != nil {
		return nil, err
	}
	logger.Debugw("resolved references", "robot", name, "links", len(res.links), "joints", len(res.joints))

	root, order, err := buildTree(res.links)
	if err != nil {
		return nil, err
	}

	factor := utils.ScaleFactor()
	for _, j := range res.joints {
		j.scaleLimits(factor)
	}

	mimicOrder, err := sortMimics(res.joints)
	if err != nil {
		return nil, err
	}
	logger.Debugw("built kinematic tree", "robot", name, "root", root.name, "depth", maxDepth(root))

	return newRobot(name, root, res.links, res.joints, order, mimicOrder), nil
}

// buildTree finds the single root link and walks the tree breadth first from it, returning the visit
// order. Links never reached are reported as unreachable, or, when they lie on a loop of parent joints,
// as a cycle.
func buildTree(links []*Link) (*Link, []*Link, error) {
	roots := lo.Filter(links, func(l *Link, _ int) bool { return l.parent == nil })
	switch len(roots) {
	case 0:
		return nil, nil, NewNoRootLinkError()
	case 1:
	default:
		return nil, nil, NewMultipleRootsError(lo.Map(roots, func(l *Link, _ int) string { return l.name })...)
	}
	root := roots[0]

	visited := map[*Link]bool{root: true}
	order := []*Link{root}
	var errs error
	for queue := []*Link{root}; len(queue) > 0; queue = queue[1:] {
		for _, c := range queue[0].children {
			if visited[c.Link] {
				errs = multierr.Append(errs, NewCycleDetectedError(queue[0].name, c.Link.name))
				continue
			}
			visited[c.Link] = true
			order = append(order, c.Link)
			queue = append(queue, c.Link)
		}
	}

	reported := map[*Link]bool{}
	for _, l := range links {
		if visited[l] || reported[l] {
			continue
		}
		loop := parentLoop(l)
		if lo.Contains(loop, l) {
			for _, member := range loop {
				reported[member] = true
			}
			errs = multierr.Append(errs, NewCycleDetectedError(lo.Map(loop, func(m *Link, _ int) string { return m.name })...))
			continue
		}
		errs = multierr.Append(errs, NewUnreachableLinkError(l.name))
	}
	if errs != nil {
		return nil, nil, errs
	}
	return root, order, nil
}

// parentLoop follows parent joints upward from start until a link repeats and returns the loop it
// found, listed from parent to child and closed by repeating its first link. It returns nil if the walk
// reaches a root instead.
func parentLoop(start *Link) []*Link {
	seen := map[*Link]int{}
	var chain []*Link
	for l := start; l != nil; l = l.parent.Link {
		if at, ok := seen[l]; ok {
			chain = chain[at:]
			break
		}
		seen[l] = len(chain)
		chain = append(chain, l)
		if l.parent == nil {
			return nil
		}
	}
	if len(chain) == 0 {
		return nil
	}
	// chain runs child to parent; the loop reads naturally the other way
	loop := make([]*Link, 0, len(chain)+1)
	loop = append(loop, chain[0])
	for i := len(chain) - 1; i >= 0; i-- {
		loop = append(loop, chain[i])
	}
	return loop
}

func maxDepth(l *Link) int {
	depth := 0
	for _, c := range l.children {
		depth = max(depth, 1+maxDepth(c.Link))
	}
	return depth
}
