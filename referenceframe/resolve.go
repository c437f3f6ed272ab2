package referenceframe

import (
	"go.uber.org/multierr"
)

// resolved is the outcome of name resolution: copies of the supplied links and joints with their
// cross references attached. The name tables used to get there are not kept.
type resolved struct {
	links  []*Link
	joints []*Joint
}

// resolveReferences copies the given links and joints and attaches every name based reference:
// joint parent and child links, link parent and child joints. Mimic targets are checked to exist. The
// inputs are never modified. All referential problems found are returned together.
func resolveReferences(links []*Link, joints []*Joint) (*resolved, error) {
	res := &resolved{
		links:  make([]*Link, 0, len(links)),
		joints: make([]*Joint, 0, len(joints)),
	}
	var errs error

	linkByName := make(map[string]*Link, len(links))
	for _, l := range links {
		if _, ok := linkByName[l.name]; ok {
			errs = multierr.Append(errs, NewDuplicateNameError("link", l.name))
			continue
		}
		c := l.clone()
		linkByName[c.name] = c
		res.links = append(res.links, c)
	}
	jointByName := make(map[string]*Joint, len(joints))
	for _, j := range joints {
		if _, ok := jointByName[j.name]; ok {
			errs = multierr.Append(errs, NewDuplicateNameError("joint", j.name))
			continue
		}
		c := j.clone()
		jointByName[c.name] = c
		res.joints = append(res.joints, c)
	}

	// claims records, per child link, every joint naming it as child; order of first claim is kept
	// for reporting.
	claims := map[string][]string{}
	var claimed []string
	for _, j := range res.joints {
		parent, parentOK := linkByName[j.parent]
		if !parentOK {
			errs = multierr.Append(errs, NewUnknownLinkReferenceError(j.name, j.parent))
		}
		child, childOK := linkByName[j.child]
		if !childOK {
			errs = multierr.Append(errs, NewUnknownLinkReferenceError(j.name, j.child))
		}
		if !parentOK || !childOK {
			continue
		}

		if _, ok := claims[child.name]; !ok {
			claimed = append(claimed, child.name)
		}
		claims[child.name] = append(claims[child.name], j.name)
		if len(claims[child.name]) > 1 {
			continue
		}

		j.parentLink = parent
		j.childLink = child
		child.parent = &ParentJoint{Joint: j, Link: parent}
		parent.children = append(parent.children, ChildJoint{Joint: j, Link: child})
	}
	for _, name := range claimed {
		if len(claims[name]) > 1 {
			errs = multierr.Append(errs, NewDuplicateChildJointError(name, claims[name]...))
		}
	}

	for _, j := range res.joints {
		if j.mimic == nil {
			continue
		}
		switch target := j.mimic.Joint; {
		case target == j.name:
			errs = multierr.Append(errs, NewSelfMimicError(j.name))
		case jointByName[target] == nil:
			errs = multierr.Append(errs, NewUnknownMimicTargetError(j.name, target))
		}
	}

	if errs != nil {
		return nil, errs
	}
	return res, nil
}
