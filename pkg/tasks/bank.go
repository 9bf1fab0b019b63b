package tasks

// Built-in benchmark banks. Difficulty is a subjective 0-1 estimate;
// easy tasks double as calibration anchors.

var triviaTasks = []Task{
	{ID: "t01", Type: TaskTrivia, Prompt: "What is the chemical symbol for gold?", GroundTruth: "Au", Difficulty: 0.1},
	{ID: "t02", Type: TaskTrivia, Prompt: "What planet is closest to the Sun?", GroundTruth: "Mercury", Difficulty: 0.1},
	{ID: "t03", Type: TaskTrivia, Prompt: "What is the capital of Australia?", GroundTruth: "Canberra", Difficulty: 0.4},
	{ID: "t04", Type: TaskTrivia, Prompt: "In what year was the Treaty of Westphalia signed?", GroundTruth: "1648", Difficulty: 0.7},
	{ID: "t05", Type: TaskTrivia, Prompt: "What is the second most abundant element in Earth's crust by mass?", GroundTruth: "Silicon", Difficulty: 0.6},
	{ID: "t06", Type: TaskTrivia, Prompt: "What is the smallest country in Africa by land area?", GroundTruth: "Seychelles", Difficulty: 0.8},
	{ID: "t07", Type: TaskTrivia, Prompt: "Who was the first person to observe Saturn's rings (though he didn't know what they were)?", GroundTruth: "Galileo", Difficulty: 0.7},
	{ID: "t08", Type: TaskTrivia, Prompt: "What is the only letter that doesn't appear in any U.S. state name?", GroundTruth: "Q", Difficulty: 0.8},
	{ID: "t09", Type: TaskTrivia, Prompt: "In what year did the last confirmed smallpox case occur?", GroundTruth: "1978", Difficulty: 0.9},
	{ID: "t10", Type: TaskTrivia, Prompt: "What is the longest river entirely within one country?", GroundTruth: "Yangtze", Difficulty: 0.8},
	{ID: "t11", Type: TaskTrivia, Prompt: "How many time zones does China officially use?", GroundTruth: "1", Difficulty: 0.8},
	{ID: "t12", Type: TaskTrivia, Prompt: "What fruit is the most produced in the world by weight?", GroundTruth: "Tomato", Difficulty: 0.7},
	{ID: "t13", Type: TaskTrivia, Prompt: "Which has more neurons: a human brain or a dog's brain?", GroundTruth: "Human", Difficulty: 0.3},
	{ID: "t14", Type: TaskTrivia, Prompt: "What color is a polar bear's skin (not fur)?", GroundTruth: "Black", Difficulty: 0.7},
	{ID: "t15", Type: TaskTrivia, Prompt: "What country has the most islands?", GroundTruth: "Sweden", Difficulty: 0.8},
}

var estimationTasks = []Task{
	{ID: "e01", Type: TaskEstimation, Prompt: "Estimate the number of bones in the adult human body.", GroundTruth: "206", Difficulty: 0.3},
	{ID: "e02", Type: TaskEstimation, Prompt: "Estimate the boiling point of water at sea level in Fahrenheit.", GroundTruth: "212", Difficulty: 0.2},
	{ID: "e03", Type: TaskEstimation, Prompt: "Estimate the population of Nigeria in millions (nearest 10).", GroundTruth: "220", Difficulty: 0.6},
	{ID: "e04", Type: TaskEstimation, Prompt: "Estimate the depth of the Mariana Trench in meters (nearest 500).", GroundTruth: "11000", Difficulty: 0.6},
	{ID: "e05", Type: TaskEstimation, Prompt: "Estimate the number of airports in the United States (nearest 1000).", GroundTruth: "19000", Difficulty: 0.8},
	{ID: "e06", Type: TaskEstimation, Prompt: "Estimate the number of piano tuners in Chicago (nearest 50).", GroundTruth: "200", Difficulty: 0.9},
	{ID: "e07", Type: TaskEstimation, Prompt: "Estimate the total length of all roads in the US in millions of miles (nearest integer).", GroundTruth: "4", Difficulty: 0.9},
	{ID: "e08", Type: TaskEstimation, Prompt: "Estimate the number of golf balls that fit in a school bus (nearest 10000).", GroundTruth: "500000", Difficulty: 0.9},
	{ID: "e09", Type: TaskEstimation, Prompt: "Estimate the weight of all ants on Earth compared to all humans. Is the total ant biomass heavier? Answer the ratio (ant mass / human mass) to nearest 0.1.", GroundTruth: "0.1", Difficulty: 0.9},
	{ID: "e10", Type: TaskEstimation, Prompt: "Estimate the number of satellites currently orbiting Earth (nearest 1000).", GroundTruth: "10000", Difficulty: 0.8},
	{ID: "e11", Type: TaskEstimation, Prompt: "Estimate the average distance between stars in the Milky Way in light-years (nearest integer).", GroundTruth: "5", Difficulty: 0.8},
	{ID: "e12", Type: TaskEstimation, Prompt: "Estimate the number of grains of sand on all of Earth's beaches, as a power of 10 (e.g., answer '18' for 10^18).", GroundTruth: "18", Difficulty: 0.9},
}

var reasoningTasks = []Task{
	{ID: "r01", Type: TaskReasoning, Prompt: "A bat and a ball cost $1.10 in total. The bat costs $1.00 more than the ball. How much does the ball cost in cents?", GroundTruth: "5", Difficulty: 0.5},
	{ID: "r02", Type: TaskReasoning, Prompt: "If it takes 5 machines 5 minutes to make 5 widgets, how many minutes would it take 100 machines to make 100 widgets?", GroundTruth: "5", Difficulty: 0.5},
	{ID: "r03", Type: TaskReasoning, Prompt: "In a lake, there is a patch of lily pads. Every day, the patch doubles in size. If it takes 48 days for the patch to cover the entire lake, how many days would it take for the patch to cover half the lake?", GroundTruth: "47", Difficulty: 0.4},
	{ID: "r04", Type: TaskReasoning, Prompt: "If all roses are flowers and some flowers fade quickly, can we conclude that some roses fade quickly? Answer Yes or No.", GroundTruth: "No", Difficulty: 0.7},
	{ID: "r05", Type: TaskReasoning, Prompt: "All cats are animals. Some animals are dogs. Therefore, some cats are dogs. Is this argument valid? Answer Yes or No.", GroundTruth: "No", Difficulty: 0.7},
	{ID: "r06", Type: TaskReasoning, Prompt: "If no fish are birds, and some birds can swim, can we conclude that some things that swim are not fish? Answer Yes or No.", GroundTruth: "Yes", Difficulty: 0.8},
	{ID: "r07", Type: TaskReasoning, Prompt: "Is 91 prime? Answer Yes or No.", GroundTruth: "No", Difficulty: 0.7},
	{ID: "r08", Type: TaskReasoning, Prompt: "What is 17 * 23? Answer with just the number.", GroundTruth: "391", Difficulty: 0.6},
	{ID: "r09", Type: TaskReasoning, Prompt: "A train leaves at 2:00 PM going 60 mph. Another leaves the same station at 3:00 PM going 90 mph in the same direction. At what time does the second train catch the first? Answer in HH:MM PM format.", GroundTruth: "5:00 PM", Difficulty: 0.7},
	{ID: "r10", Type: TaskReasoning, Prompt: "I have a drawer with 10 black socks and 10 white socks. It's dark and I can't see. What is the minimum number of socks I must pull out to guarantee a matching pair?", GroundTruth: "3", Difficulty: 0.5},
	{ID: "r11", Type: TaskReasoning, Prompt: "You are in a race and you pass the person in second place. What place are you in now?", GroundTruth: "2", Difficulty: 0.5},
	{ID: "r12", Type: TaskReasoning, Prompt: "A man is looking at a photograph. Someone asks 'Who is in the picture?' He replies: 'Brothers and sisters I have none, but that man's father is my father's son.' Who is in the picture?", GroundTruth: "His son", Difficulty: 0.8},
	{ID: "r13", Type: TaskReasoning, Prompt: "You have 12 coins, one of which is counterfeit and either heavier or lighter than the rest. Using a balance scale exactly 3 times, can you always identify the counterfeit coin AND determine whether it is heavier or lighter? Answer Yes or No.", GroundTruth: "Yes", Difficulty: 0.9},
	{ID: "r14", Type: TaskReasoning, Prompt: "There are three boxes: one contains only apples, one contains only oranges, and one contains both. All labels are wrong. You can pick one fruit from one box. From which box should you pick to determine all labels? Answer: the box labeled 'Both', 'Apples', or 'Oranges'.", GroundTruth: "Both", Difficulty: 0.8},
	{ID: "r15", Type: TaskReasoning, Prompt: "If you have a 4-minute hourglass and a 7-minute hourglass, how do you measure exactly 9 minutes? Answer with the total time measured.", GroundTruth: "9", Difficulty: 0.9},
}

// Builtin returns a corpus over the built-in task banks.
func Builtin() *Corpus {
	all := make([]Task, 0, len(triviaTasks)+len(estimationTasks)+len(reasoningTasks))
	all = append(all, triviaTasks...)
	all = append(all, estimationTasks...)
	all = append(all, reasoningTasks...)
	return NewCorpus(all)
}
