package catalog

import (
	"strconv"

	"github.com/arjohnson15/workoutapp/types"
)

// Builtin returns the static starter catalog. Ids are 1..75.
func Builtin() []types.Exercise {
	return []types.Exercise{
		// Chest
		strength(1, "Barbell Bench Press", "Chest", "Barbell"),
		strength(2, "Dumbbell Bench Press", "Chest", "Dumbbell"),
		strength(3, "Incline Barbell Bench Press", "Chest", "Barbell"),
		strength(4, "Incline Dumbbell Press", "Chest", "Dumbbell"),
		strength(5, "Decline Bench Press", "Chest", "Barbell"),
		strength(6, "Chest Fly (Dumbbell)", "Chest", "Dumbbell"),
		strength(7, "Cable Chest Fly", "Chest", "Cable"),
		strength(8, "Push-ups", "Chest", "Bodyweight"),
		strength(9, "Chest Dips", "Chest", "Bodyweight"),
		strength(10, "Pec Deck Machine", "Chest", "Machine"),

		// Back
		strength(11, "Deadlift", "Back", "Barbell"),
		strength(12, "Barbell Row", "Back", "Barbell"),
		strength(13, "Dumbbell Row", "Back", "Dumbbell"),
		strength(14, "Pull-ups", "Back", "Bodyweight"),
		strength(15, "Chin-ups", "Back", "Bodyweight"),
		strength(16, "Lat Pulldown", "Back", "Cable"),
		strength(17, "Seated Cable Row", "Back", "Cable"),
		strength(18, "T-Bar Row", "Back", "Machine"),
		strength(19, "Face Pulls", "Back", "Cable"),
		strength(20, "Hyperextensions", "Back", "Machine"),

		// Shoulders
		strength(21, "Overhead Press (Barbell)", "Shoulders", "Barbell"),
		strength(22, "Dumbbell Shoulder Press", "Shoulders", "Dumbbell"),
		strength(23, "Arnold Press", "Shoulders", "Dumbbell"),
		strength(24, "Lateral Raise", "Shoulders", "Dumbbell"),
		strength(25, "Front Raise", "Shoulders", "Dumbbell"),
		strength(26, "Rear Delt Fly", "Shoulders", "Dumbbell"),
		strength(27, "Cable Lateral Raise", "Shoulders", "Cable"),
		strength(28, "Machine Shoulder Press", "Shoulders", "Machine"),
		strength(29, "Upright Row", "Shoulders", "Barbell"),
		strength(30, "Shrugs", "Shoulders", "Dumbbell"),

		// Legs
		strength(31, "Barbell Squat", "Legs", "Barbell"),
		strength(32, "Front Squat", "Legs", "Barbell"),
		strength(33, "Leg Press", "Legs", "Machine"),
		strength(34, "Romanian Deadlift", "Legs", "Barbell"),
		strength(35, "Leg Extension", "Legs", "Machine"),
		strength(36, "Leg Curl", "Legs", "Machine"),
		strength(37, "Lunges", "Legs", "Dumbbell"),
		strength(38, "Bulgarian Split Squat", "Legs", "Dumbbell"),
		strength(39, "Calf Raise (Standing)", "Legs", "Machine"),
		strength(40, "Calf Raise (Seated)", "Legs", "Machine"),
		strength(41, "Hack Squat", "Legs", "Machine"),
		strength(42, "Goblet Squat", "Legs", "Dumbbell"),

		// Biceps
		strength(43, "Barbell Curl", "Biceps", "Barbell"),
		strength(44, "Dumbbell Curl", "Biceps", "Dumbbell"),
		strength(45, "Hammer Curl", "Biceps", "Dumbbell"),
		strength(46, "Cable Curl", "Biceps", "Cable"),
		strength(47, "Preacher Curl", "Biceps", "Barbell"),
		strength(48, "Concentration Curl", "Biceps", "Dumbbell"),
		strength(49, "EZ Bar Curl", "Biceps", "Barbell"),

		// Triceps
		strength(50, "Tricep Dips", "Triceps", "Bodyweight"),
		strength(51, "Close-Grip Bench Press", "Triceps", "Barbell"),
		strength(52, "Tricep Pushdown", "Triceps", "Cable"),
		strength(53, "Overhead Tricep Extension", "Triceps", "Dumbbell"),
		strength(54, "Skull Crushers", "Triceps", "Barbell"),
		strength(55, "Tricep Kickback", "Triceps", "Dumbbell"),

		// Abs
		strength(56, "Crunches", "Abs", "Bodyweight"),
		strength(57, "Plank", "Abs", "Bodyweight"),
		strength(58, "Russian Twists", "Abs", "Bodyweight"),
		strength(59, "Leg Raises", "Abs", "Bodyweight"),
		strength(60, "Cable Crunches", "Abs", "Cable"),
		strength(61, "Ab Wheel Rollout", "Abs", "Equipment"),
		strength(62, "Mountain Climbers", "Abs", "Bodyweight"),
		strength(63, "Bicycle Crunches", "Abs", "Bodyweight"),

		// Cardio
		cardio(64, "Treadmill Running", "Cardio", "Machine"),
		cardio(65, "Treadmill Walking", "Cardio", "Machine"),
		cardio(66, "Elliptical", "Cardio", "Machine"),
		cardio(67, "Stationary Bike", "Cardio", "Machine"),
		cardio(68, "Rowing Machine", "Cardio", "Machine"),
		cardio(69, "Stair Climber", "Cardio", "Machine"),
		cardio(70, "Jump Rope", "Cardio", "Equipment"),
		cardio(71, "Swimming", "Cardio", "None"),
		cardio(72, "Cycling (Outdoor)", "Cardio", "Equipment"),
		cardio(73, "Running (Outdoor)", "Cardio", "None"),
		cardio(74, "Burpees", "Cardio", "Bodyweight"),
		cardio(75, "Box Jumps", "Cardio", "Equipment"),
	}
}

func strength(id int, name, category, equipment string) types.Exercise {
	return builtin(id, name, category, equipment, types.ExerciseTypeStrength)
}

func cardio(id int, name, category, equipment string) types.Exercise {
	return builtin(id, name, category, equipment, types.ExerciseTypeCardio)
}

func builtin(id int, name, category, equipment string, t types.ExerciseType) types.Exercise {
	return types.Exercise{
		ID:        types.ExerciseID(strconv.Itoa(id)),
		Name:      name,
		Category:  category,
		Equipment: equipment,
		Type:      t,
	}
}
