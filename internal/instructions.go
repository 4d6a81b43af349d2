package internal

// instructionSet holds the per-language texts sent to the completion service
type instructionSet struct {
	system   string
	material map[MaterialType]string
	combine  map[MaterialType]string
}

// combineSystemMessage is used for the merge call in every language
const combineSystemMessage = "You are a helpful assistant that combines information."

var instructions = map[Language]instructionSet{
	LanguageSpanish: {
		system: "Eres un asistente de estudio útil. Responde siempre en el mismo idioma que la transcripción.",
		material: map[MaterialType]string{
			MaterialSummary: "Proporciona un resumen claro y bien estructurado de la siguiente transcripción.\n\n" +
				"INSTRUCCIONES DE FORMATO:\n" +
				"1. Comienza con un párrafo introductorio que resuma el tema principal.\n" +
				"2. Usa párrafos cortos de 2-3 oraciones cada uno.\n" +
				"3. Separa cada párrafo con una línea en blanco.\n" +
				"4. No uses viñetas ni listas numeradas.\n" +
				"5. Asegúrate de que cada idea principal tenga su propio párrafo.\n" +
				"6. Usa oraciones completas y puntuación adecuada.\n\n" +
				"Ejemplo de formato deseado:\n\n" +
				"Este es el primer párrafo que introduce el tema principal. Debe ser conciso pero informativo.\n\n" +
				"Este es el segundo párrafo que desarrolla una idea específica. Nota cómo hay una línea en blanco antes y después.\n\n" +
				"Este es el tercer párrafo que continúa con la explicación. Cada párrafo debe fluir naturalmente con el siguiente.",
			MaterialQuestions: "Genera 5 preguntas importantes y sus respuestas basadas en esta transcripción.\n" +
				"IMPORTANTE: Sigue EXACTAMENTE este formato, incluyendo los números de línea y saltos de línea:\n\n" +
				"Pregunta 1: [Escribe aquí la primera pregunta terminando con signo de interrogación]\n" +
				"Respuesta: [Escribe aquí la respuesta a la primera pregunta]\n\n" +
				"Pregunta 2: [Escribe aquí la segunda pregunta terminando con signo de interrogación]\n" +
				"Respuesta: [Escribe aquí la respuesta a la segunda pregunta]\n\n" +
				"Pregunta 3: [Escribe aquí la tercera pregunta terminando con signo de interrogación]\n" +
				"Respuesta: [Escribe aquí la respuesta a la tercera pregunta]\n\n" +
				"Pregunta 4: [Escribe aquí la cuarta pregunta terminando con signo de interrogación]\n" +
				"Respuesta: [Escribe aquí la respuesta a la cuarta pregunta]\n\n" +
				"Pregunta 5: [Escribe aquí la quinta pregunta terminando con signo de interrogación]\n" +
				"Respuesta: [Escribe aquí la respuesta a la quinta pregunta]\n\n" +
				"REGLAS ESTRICTAS:\n" +
				"1. Usa EXACTAMENTE el formato mostrado arriba\n" +
				"2. No incluyas ningún otro texto fuera de este formato\n" +
				"3. Asegúrate de que cada pregunta termine con \"?\"\n" +
				"4. No incluyas prefijos como \"1.\" o \"a)\" en las respuestas\n" +
				"5. Mantén cada pregunta y respuesta en una sola línea\n" +
				"6. Incluye exactamente una línea en blanco entre cada par pregunta-respuesta",
			MaterialKeyPoints: "Extrae los 5 puntos clave más importantes de esta transcripción.\n" +
				"Formato requerido (usa exactamente este formato):\n\n" +
				"• [Primer punto clave. Escribe una oración completa que resuma este punto.]\n\n" +
				"• [Segundo punto clave. Sé claro y conciso, pero asegúrate de que sea una oración completa.]\n\n" +
				"• [Y así sucesivamente para los 5 puntos.]\n\n" +
				"Asegúrate de que cada punto esté en su propia línea, comience con un guion (•) y tenga un espacio después.\n" +
				"Incluye una línea en blanco entre cada punto para mejor legibilidad.",
		},
		combine: map[MaterialType]string{
			MaterialSummary:   "Combina los siguientes resúmenes en uno solo coherente. Mantén solo la información más importante:",
			MaterialQuestions: "Combina las siguientes preguntas y respuestas. Elimina duplicados y mantén solo las 5 más importantes:",
			MaterialKeyPoints: "Combina los siguientes puntos clave. Elimina duplicados y mantén solo los 5 más importantes:",
		},
	},
	LanguageEnglish: {
		system: "You are a helpful study assistant. Always respond in the same language as the transcript.",
		material: map[MaterialType]string{
			MaterialSummary: "Please provide a clear and well-structured summary of the following transcript.\n\n" +
				"FORMATTING INSTRUCTIONS:\n" +
				"1. Begin with an introductory paragraph summarizing the main topic.\n" +
				"2. Use short paragraphs of 2-3 sentences each.\n" +
				"3. Separate each paragraph with a blank line.\n" +
				"4. Do not use bullet points or numbered lists.\n" +
				"5. Ensure each main idea has its own paragraph.\n" +
				"6. Use complete sentences and proper punctuation.\n\n" +
				"Example of desired format:\n\n" +
				"This is the first paragraph introducing the main topic. It should be concise yet informative.\n\n" +
				"This is the second paragraph developing a specific point. Note the blank lines before and after.\n\n" +
				"This is the third paragraph continuing the explanation. Each paragraph should flow naturally to the next.",
			MaterialQuestions: "Generate 5 important questions and answers based on this transcript.\n" +
				"IMPORTANT: Follow EXACTLY this format, including line numbers and line breaks:\n\n" +
				"Question 1: [Type your first question ending with a question mark]\n" +
				"Answer: [Type the answer to the first question]\n\n" +
				"Question 2: [Type your second question ending with a question mark]\n" +
				"Answer: [Type the answer to the second question]\n\n" +
				"Question 3: [Type your third question ending with a question mark]\n" +
				"Answer: [Type the answer to the third question]\n\n" +
				"Question 4: [Type your fourth question ending with a question mark]\n" +
				"Answer: [Type the answer to the fourth question]\n\n" +
				"Question 5: [Type your fifth question ending with a question mark]\n" +
				"Answer: [Type the answer to the fifth question]\n\n" +
				"STRICT RULES:\n" +
				"1. Use EXACTLY the format shown above\n" +
				"2. Do not include any other text outside this format\n" +
				"3. Make sure each question ends with \"?\"\n" +
				"4. Do not include prefixes like \"1.\" or \"a)\" in the answers\n" +
				"5. Keep each question and answer on a single line\n" +
				"6. Include exactly one blank line between each Q&A pair",
			MaterialKeyPoints: "Extract the 5 most important key points from this transcript.\n" +
				"Required format (use exactly this format):\n\n" +
				"• [First key point. Write a complete sentence that summarizes this point.]\n\n" +
				"• [Second key point. Be clear and concise, but make sure it is a complete sentence.]\n\n" +
				"• [And so on for all 5 points.]\n\n" +
				"Make sure each point is on its own line, starts with a bullet (•) and has a space after it.\n" +
				"Include a blank line between each point for better readability.",
		},
		combine: map[MaterialType]string{
			MaterialSummary:   "Combine the following summaries into one coherent summary. Keep only the most important information:",
			MaterialQuestions: "Combine the following questions and answers. Remove duplicates and keep only the 5 most important ones:",
			MaterialKeyPoints: "Combine the following key points. Remove duplicates and keep only the 5 most important ones:",
		},
	},
}

// instructionsFor falls back to English for languages without templates
func instructionsFor(lang Language) instructionSet {
	if set, ok := instructions[lang]; ok {
		return set
	}
	return instructions[LanguageEnglish]
}

// SystemMessage returns the per-chunk system message for lang
func SystemMessage(lang Language) string {
	return instructionsFor(lang).system
}

// Instruction returns the per-chunk instruction for material in lang
func Instruction(material MaterialType, lang Language) string {
	return instructionsFor(lang).material[material]
}

// CombineInstruction returns the merge instruction for material in lang
func CombineInstruction(material MaterialType, lang Language) string {
	return instructionsFor(lang).combine[material]
}
