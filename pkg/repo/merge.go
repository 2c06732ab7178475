package repo

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/odvcencio/gitlet/pkg/object"
)

// MergeOutcome is the terminal state of a merge.
type MergeOutcome int

const (
	// AlreadyUpToDate: the given branch is an ancestor of the current one.
	AlreadyUpToDate MergeOutcome = iota
	// FastForwarded: the current branch was an ancestor of the given one and
	// now points at its tip.
	FastForwarded
	// MergeCommitCreated: a two-parent commit was recorded, possibly with
	// conflict markers in some files.
	MergeCommitCreated
)

func (o MergeOutcome) String() string {
	switch o {
	case AlreadyUpToDate:
		return "already up to date"
	case FastForwarded:
		return "fast-forwarded"
	case MergeCommitCreated:
		return "merge commit created"
	default:
		return fmt.Sprintf("MergeOutcome(%d)", int(o))
	}
}

// FileMergeReport records what the merge did to one path.
type FileMergeReport struct {
	Path   string
	Action MergeAction
}

// MergeReport is the result of Merge.
type MergeReport struct {
	Outcome MergeOutcome
	Split   object.Hash // empty if the tips share no history
	Commit  object.Hash // new branch tip; unchanged tip for AlreadyUpToDate
	Files   []FileMergeReport
}

// HasConflicts reports whether any path was written with conflict markers.
func (m *MergeReport) HasConflicts() bool {
	for _, f := range m.Files {
		if f.Action == ActionConflict {
			return true
		}
	}
	return false
}

// Conflicts returns the conflicted paths, sorted.
func (m *MergeReport) Conflicts() []string {
	var out []string
	for _, f := range m.Files {
		if f.Action == ActionConflict {
			out = append(out, f.Path)
		}
	}
	return out
}

// MergeAction is the per-path result of three-way classification.
type MergeAction int

const (
	ActionKeep     MergeAction = iota // working tree and index untouched
	ActionTake                        // given's blob is checked out and staged
	ActionDelete                      // path is removed and staged for removal
	ActionConflict                    // both sides are written with markers and staged
)

func (a MergeAction) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionTake:
		return "take"
	case ActionDelete:
		return "delete"
	case ActionConflict:
		return "conflict"
	default:
		return fmt.Sprintf("MergeAction(%d)", int(a))
	}
}

// ClassifyPath decides the fate of one path from its blob ids in the split
// point, the current tip and the given tip. An empty id means absent.
func ClassifyPath(split, cur, given object.Hash) MergeAction {
	inS, inC, inG := split != "", cur != "", given != ""
	switch {
	case inC && inG && cur == given:
		return ActionKeep
	case inS && inC && inG:
		switch {
		case split == cur:
			return ActionTake
		case split == given:
			return ActionKeep
		default:
			return ActionConflict
		}
	case inS && inC:
		if split == cur {
			return ActionDelete
		}
		return ActionConflict
	case inS && inG:
		if split == given {
			return ActionKeep
		}
		return ActionConflict
	case inC && inG:
		return ActionConflict
	case inG:
		return ActionTake
	default:
		// current only, split only
		return ActionKeep
	}
}

// mergeStep is one planned change. data is the content to write for Take
// and Conflict.
type mergeStep struct {
	path   string
	action MergeAction
	blob   object.Hash
	data   []byte
}

// ConflictContent renders the working-tree content of a conflicted path. A
// missing side is empty and a side without a trailing newline gets one.
func ConflictContent(cur, given []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(cur)
	if len(cur) > 0 && cur[len(cur)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("=======\n")
	buf.Write(given)
	if len(given) > 0 && given[len(given)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes()
}

// Merge merges branch given into the current branch.
//
// Preconditions are checked in order: the branch exists, it is not the
// current branch, nothing is staged, and no untracked working file would be
// overwritten by given's tip. The split point is then chosen from the two
// ancestries. If given is already contained in the current branch nothing
// changes; if the current tip is the split point the branch fast-forwards and
// the working tree is updated. Otherwise every path is classified, the whole
// plan is built, and only then are the working tree and index changed and a
// merge commit recorded. Conflicts are reported, not returned as errors.
func (r *Repo) Merge(given string) (*MergeReport, error) {
	st, err := r.LoadState()
	if err != nil {
		return nil, err
	}
	ok, err := r.BranchExists(given)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSuchBranch
	}
	if given == st.Branch {
		return nil, ErrSelfMerge
	}
	if !st.Index.Empty() {
		return nil, ErrUncommittedChanges
	}

	curID, cur, err := r.head(st)
	if err != nil {
		return nil, err
	}
	givenID, err := r.ReadBranch(given)
	if err != nil {
		return nil, err
	}
	giv, err := r.readCommit(givenID)
	if err != nil {
		return nil, err
	}
	files, err := r.Work.List()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if p, bad := r.untrackedInTheWay(cur, giv, files); bad {
		r.debug("untracked file blocks merge", "path", p)
		return nil, ErrUntrackedFile
	}

	givenAnc, err := r.Ancestors(givenID)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	curAnc, err := r.Ancestors(curID)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	split, found := SplitPoint(givenAnc, curAnc)
	r.debug("split point", "split", split.Short(7), "found", found, "current", curID.Short(7), "given", givenID.Short(7))

	report := &MergeReport{Split: split}
	switch {
	case found && split == givenID:
		report.Outcome = AlreadyUpToDate
		report.Commit = curID
		return report, nil
	case found && split == curID:
		// The working tree follows the branch so that the next commit starts
		// from the given tip's files, not the stale ones.
		if err := r.materialize(cur, giv); err != nil {
			return nil, err
		}
		if err := r.UpdateBranch(st.Branch, givenID); err != nil {
			return nil, err
		}
		st.Index.Clear()
		if err := r.SaveState(st); err != nil {
			return nil, err
		}
		report.Outcome = FastForwarded
		report.Commit = givenID
		return report, nil
	}

	base := map[string]object.Hash{}
	if found {
		sc, err := r.readCommit(split)
		if err != nil {
			return nil, err
		}
		base = sc.Snapshot
	}
	plan, err := r.planMerge(base, cur.Snapshot, giv.Snapshot)
	if err != nil {
		return nil, err
	}

	for _, step := range plan {
		if err := r.applyMergeStep(st, cur.Snapshot, step); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, FileMergeReport{Path: step.path, Action: step.action})
	}
	id, err := r.createCommit(st, fmt.Sprintf("Merged %s into %s", given, st.Branch), givenID)
	if err != nil {
		return nil, err
	}
	if err := r.SaveState(st); err != nil {
		return nil, err
	}
	report.Outcome = MergeCommitCreated
	report.Commit = id
	return report, nil
}

// planMerge classifies every path in the union of the three snapshots and
// reads whatever content the changes need. Paths that need nothing are
// skipped; the walk always covers every path.
func (r *Repo) planMerge(split, cur, given map[string]object.Hash) ([]mergeStep, error) {
	var plan []mergeStep
	for _, p := range unionPaths(split, cur, given) {
		action := ClassifyPath(split[p], cur[p], given[p])
		switch action {
		case ActionKeep:
			continue
		case ActionTake:
			data, err := r.readBlobData(given[p])
			if err != nil {
				return nil, fmt.Errorf("merge %s: %w", p, err)
			}
			plan = append(plan, mergeStep{path: p, action: action, blob: given[p], data: data})
		case ActionDelete:
			plan = append(plan, mergeStep{path: p, action: action})
		case ActionConflict:
			var curData, givenData []byte
			var err error
			if id := cur[p]; id != "" {
				if curData, err = r.readBlobData(id); err != nil {
					return nil, fmt.Errorf("merge %s: %w", p, err)
				}
			}
			if id := given[p]; id != "" {
				if givenData, err = r.readBlobData(id); err != nil {
					return nil, fmt.Errorf("merge %s: %w", p, err)
				}
			}
			data := ConflictContent(curData, givenData)
			plan = append(plan, mergeStep{
				path:   p,
				action: action,
				blob:   r.Store.HashFunc().BlobID(p, data),
				data:   data,
			})
		}
	}
	return plan, nil
}

func (r *Repo) applyMergeStep(st *State, head map[string]object.Hash, step mergeStep) error {
	r.debug("merge path", "path", step.path, "action", step.action.String())
	switch step.action {
	case ActionDelete:
		if err := r.Work.Remove(step.path); err != nil {
			return fmt.Errorf("merge %s: %w", step.path, err)
		}
		st.Index.MarkRemoved(step.path)
	case ActionConflict:
		if _, err := r.Store.WriteBlob(&object.Blob{Path: step.path, Data: step.data}); err != nil {
			return fmt.Errorf("merge %s: %w", step.path, err)
		}
		fallthrough
	case ActionTake:
		if err := r.Work.Write(step.path, step.data); err != nil {
			return fmt.Errorf("merge %s: %w", step.path, err)
		}
		st.Index.Stage(step.path, step.blob, head)
	}
	return nil
}

func unionPaths(snapshots ...map[string]object.Hash) []string {
	seen := make(map[string]bool)
	for _, s := range snapshots {
		for p := range s {
			seen[p] = true
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
