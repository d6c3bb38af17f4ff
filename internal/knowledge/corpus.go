package knowledge

import "pochy-chat/internal/model"

// PochyBooks is the bundled corpus. It is never mutated after init.
var PochyBooks = []model.Document{
	{
		Title:       "Pochy's Adventures in Learning",
		Author:      "Pochy Publications",
		Description: "An educational journey through fundamental concepts of knowledge and discovery.",
		Keywords:    []string{"learning", "education", "discovery", "knowledge", "adventure"},
		Chapters: []model.Chapter{
			{
				Title:   "Chapter 1: The Beginning of Curiosity",
				Content: "Pochy discovered that curiosity is the foundation of all learning. Every question leads to new understanding, and every answer opens doors to more questions. The journey of learning never truly ends - it evolves and expands with each new piece of knowledge gained.",
				Summary: "Introduction to the power of curiosity in learning.",
			},
			{
				Title:   "Chapter 2: Building Knowledge Blocks",
				Content: "Knowledge is built like a tower - one block at a time. Each new concept we learn becomes a foundation for understanding more complex ideas. Pochy learned that patience and persistence are key to building a strong knowledge base.",
				Summary: "Understanding how knowledge accumulates over time.",
			},
			{
				Title:   "Chapter 3: The Art of Asking Questions",
				Content: `The quality of our questions determines the quality of our answers. Pochy discovered that asking "why" and "how" leads to deeper understanding than simply asking "what". Good questions challenge assumptions and reveal hidden connections.`,
				Summary: "Mastering the skill of asking meaningful questions.",
			},
		},
	},
	{
		Title:       "Pochy's Guide to Problem Solving",
		Author:      "Pochy Publications",
		Description: "A comprehensive guide to approaching and solving problems systematically.",
		Keywords:    []string{"problem solving", "logic", "critical thinking", "analysis", "solutions"},
		Chapters: []model.Chapter{
			{
				Title:   "Chapter 1: Understanding the Problem",
				Content: "Before solving any problem, one must fully understand it. Pochy teaches us to break down complex problems into smaller, manageable parts. Identifying what we know, what we don't know, and what we need to find out is the first step to any solution.",
				Summary: "The importance of problem comprehension before solution attempts.",
			},
			{
				Title:   "Chapter 2: Creative Solutions",
				Content: "Sometimes the best solutions come from thinking outside the box. Pochy encourages exploring unconventional approaches and combining ideas from different fields. Innovation often happens at the intersection of diverse knowledge areas.",
				Summary: "Embracing creativity in problem-solving approaches.",
			},
			{
				Title:   "Chapter 3: Learning from Mistakes",
				Content: "Mistakes are not failures - they are lessons. Pochy emphasizes that every error provides valuable information about what doesn't work, bringing us closer to what does. The willingness to fail and learn is essential for growth.",
				Summary: "Transforming errors into learning opportunities.",
			},
		},
	},
	{
		Title:       "Pochy's World of Science",
		Author:      "Pochy Publications",
		Description: "Exploring scientific concepts and the wonders of the natural world.",
		Keywords:    []string{"science", "nature", "experiments", "discovery", "natural world"},
		Chapters: []model.Chapter{
			{
				Title:   "Chapter 1: The Scientific Method",
				Content: "Science is a systematic way of understanding the world. Pochy introduces the scientific method: observe, question, hypothesize, experiment, analyze, and conclude. This approach helps us distinguish facts from assumptions.",
				Summary: "Introduction to systematic scientific inquiry.",
			},
			{
				Title:   "Chapter 2: Nature's Patterns",
				Content: "From the spiral of a seashell to the branching of trees, patterns are everywhere in nature. Pochy reveals how mathematics and science help us understand these patterns and predict natural phenomena.",
				Summary: "Discovering mathematical patterns in the natural world.",
			},
			{
				Title:   "Chapter 3: Experiments and Discovery",
				Content: "Hands-on experimentation is the heart of scientific discovery. Pochy guides readers through simple experiments that demonstrate fundamental principles of physics, chemistry, and biology.",
				Summary: "Learning through practical experimentation.",
			},
		},
	},
}
