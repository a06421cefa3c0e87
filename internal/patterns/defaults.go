package patterns

import (
	"outlog/internal/models"
)

// Default returns the ReKep solver loop patterns for sources under projectRoot,
// in declaration order. Pass the result to New to get the scan order.
func Default(marker, projectRoot string) []models.Pattern {
	frame := func(file string, line int, function string) string {
		return models.TraceFrame{File: projectRoot + file, Line: line, Function: function}.Format(marker)
	}

	var (
		pathObjective    = frame("path_solver.py", 114, "objective")
		subgoalObjective = frame("subgoal_solver.py", 112, "objective")
		ikSolve          = frame("ik_solver.py", 71, "solve")
		objectByKeypoint = frame("environment.py", 226, "get_object_by_keypoint")
		isGrasping       = frame("environment.py", 285, "is_grasping")
		camObs           = frame("environment.py", 148, "get_cam_obs")
		envStep          = frame("environment.py", 527, "_step")
		checkReachedEE   = frame("environment.py", 482, "_check_reached_ee")
	)

	return []models.Pattern{
		{
			Name:             "Loop pattern 7",
			PrefixLines:      []string{pathObjective, ikSolve, ikSolve, ikSolve},
			SuffixBlock:      []string{objectByKeypoint, isGrasping},
			IsVariableSuffix: true,
		},
		{
			Name:  "Loop pattern 1",
			Lines: []string{subgoalObjective, ikSolve},
		},
		{
			Name:  "Loop pattern 2",
			Lines: []string{ikSolve, ikSolve, ikSolve, pathObjective},
		},
		{
			Name:  "Loop pattern 4",
			Lines: []string{camObs, envStep, checkReachedEE},
		},
		{
			Name:  "Loop pattern 3",
			Lines: []string{camObs, envStep},
		},
		{
			Name:  "Loop pattern 6",
			Lines: []string{ikSolve, objectByKeypoint, isGrasping, subgoalObjective},
		},
		{
			Name:  "Loop pattern 5 (suffix cleanup)",
			Lines: []string{objectByKeypoint, isGrasping},
		},
	}
}
