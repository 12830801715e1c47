package knowledge

import "fmt"

// topicTable returns the static topic table. Response lists are rendered
// per call so that enrichment values stay current.
func topicTable() []topic {
	return []topic{
		{
			key:      "saludos",
			patterns: []string{"hola", "buenos días", "buenas tardes", "buenas noches", "saludos", "hey"},
			responses: func(e Enrichment) []string {
				return []string{
					"¡Hola! Soy el asistente virtual del despacho legal. ¿En qué puedo ayudarte hoy?",
					"¡Buenos días! Bienvenido al despacho. ¿Cómo puedo asistirte?",
					"¡Hola! Estoy aquí para ayudarte con cualquier consulta legal. ¿Qué necesitas?",
				}
			},
		},
		{
			key:      "consulta_legal",
			patterns: []string{"consulta", "asesoría", "asesoramiento", "ayuda legal", "problema legal", "derecho"},
			responses: func(e Enrichment) []string {
				return []string{
					"Para una consulta legal, puedo ayudarte a agendar una cita con nuestros abogados especializados. ¿Te gustaría que te ayude a programar una cita?",
					"Nuestros abogados están disponibles para asesorarte. ¿En qué área del derecho necesitas ayuda?",
					"Ofrecemos consultas iniciales para evaluar tu caso. ¿Qué tipo de asunto legal tienes?",
				}
			},
		},
		{
			key:      "citas",
			patterns: []string{"agendar cita", "programar cita", "cita con abogado", "consultar abogado", "quiero una cita", "necesito cita", "hacer cita"},
			responses: func(e Enrichment) []string {
				return []string{
					"Para agendar una cita, puedo ayudarte a recopilar toda la información necesaria. ¿Te gustaría que empecemos ahora?",
					"Las citas se pueden programar de lunes a viernes de 9:00 AM a 6:00 PM. ¿Prefieres una consulta presencial o virtual?",
					"Puedo ayudarte a programar una cita. ¿Qué día y hora te resulta más conveniente?",
				}
			},
		},
		{
			key:      "horarios",
			patterns: []string{"horario", "atención", "abierto", "cerrado", "cuándo", "días"},
			responses: func(e Enrichment) []string {
				return []string{
					"Nuestro horario de atención es de lunes a viernes de 9:00 AM a 6:00 PM. Los sábados de 9:00 AM a 1:00 PM.",
					"Estamos abiertos de lunes a viernes de 9:00 AM a 6:00 PM. ¿En qué horario te gustaría programar tu consulta?",
					"Nuestro despacho atiende de lunes a viernes de 9:00 AM a 6:00 PM. También ofrecemos consultas virtuales.",
				}
			},
		},
		{
			key:      "servicios",
			patterns: []string{"servicios", "áreas", "especialidades", "practican", "derecho civil", "derecho mercantil", "derecho laboral"},
			responses: func(e Enrichment) []string {
				names := areaNames(e.Services)
				return []string{
					fmt.Sprintf("Ofrecemos servicios en: %s. ¿En qué área específica necesitas ayuda?", names),
					fmt.Sprintf("Nuestras especialidades incluyen: %s. ¿Qué tipo de caso tienes?", names),
					fmt.Sprintf("Somos especialistas en múltiples áreas del derecho: %s. ¿Podrías contarme más sobre tu situación legal?", names),
				}
			},
		},
		{
			key:      "costos",
			patterns: []string{"costo", "precio", "honorarios", "cobran", "tarifa", "pago"},
			responses: func(e Enrichment) []string {
				return []string{
					fmt.Sprintf("Los honorarios varían según la complejidad del caso. Rango típico: %s. Ofrecemos una consulta inicial gratuita para evaluar tu situación.", e.Fees.Range),
					fmt.Sprintf("Nuestros costos son competitivos y transparentes. Honorarios promedio: €%.2f. Durante la consulta inicial discutiremos los honorarios específicos.", e.Fees.Average),
					fmt.Sprintf("Los honorarios se determinan caso por caso. Rango: %s. ¿Te gustaría programar una consulta gratuita para conocer los costos?", e.Fees.Range),
				}
			},
		},
		{
			key:      "contacto",
			patterns: []string{"contacto", "teléfono", "email", "dirección", "ubicación", "dónde"},
			responses: func(e Enrichment) []string {
				return []string{
					fmt.Sprintf("Puedes contactarnos al %s, por email a %s, o visitarnos en %s.", e.Contact.Phone, e.Contact.Email, e.Contact.Address),
					fmt.Sprintf("Nuestros datos de contacto: Teléfono %s, Email: %s", e.Contact.Phone, e.Contact.Email),
					fmt.Sprintf("Estamos ubicados en %s. Teléfono: %s", e.Contact.Address, e.Contact.Phone),
				}
			},
		},
		{
			key:      "emergencia",
			patterns: []string{"emergencia", "urgente", "inmediato", "ahora", "pronto"},
			responses: func(e Enrichment) []string {
				return []string{
					fmt.Sprintf("Para casos urgentes, puedes llamarnos al %s. Tenemos abogados disponibles para emergencias.", e.Contact.Phone),
					fmt.Sprintf("En caso de emergencia legal, llama inmediatamente al %s. Estamos disponibles 24/7 para casos urgentes.", e.Contact.Phone),
					fmt.Sprintf("Para situaciones urgentes, contacta directamente al %s. Nuestro equipo está preparado para emergencias.", e.Contact.Phone),
				}
			},
		},
		{
			key:      "documentos",
			patterns: []string{"documento", "papeles", "escritura", "contrato", "demanda", "expediente", "certificado", "revisar documentos"},
			responses: func(e Enrichment) []string {
				return []string{
					"Para revisar documentos legales, necesitarás una cita con nuestros abogados. ¿Te gustaría programar una consulta?",
					"La revisión de documentos requiere análisis especializado. Nuestros abogados pueden ayudarte con esto.",
					"Los documentos legales deben ser revisados por profesionales. ¿Qué tipo de documento necesitas revisar?",
				}
			},
		},
		{
			key:      "despedida",
			patterns: []string{"adiós", "hasta luego", "nos vemos", "chao", "bye", "hasta la vista", "que tengas buen día", "gracias por la ayuda"},
			responses: func(e Enrichment) []string {
				return []string{
					"¡Hasta luego! Ha sido un placer ayudarte. Si necesitas algo más, no dudes en volver.",
					"¡Que tengas un excelente día! Estamos aquí cuando necesites asesoramiento legal.",
					"¡Hasta pronto! Recuerda que estamos disponibles para cualquier consulta legal que tengas.",
				}
			},
		},
		{
			key:      "agradecimiento",
			patterns: []string{"gracias", "thank you", "muchas gracias", "te agradezco", "muy agradecido"},
			responses: func(e Enrichment) []string {
				return []string{
					"¡De nada! Es un placer poder ayudarte. ¿Hay algo más en lo que pueda asistirte?",
					"¡Por supuesto! Estoy aquí para ayudarte. ¿Necesitas información sobre algún otro tema?",
					"¡Encantado de ayudar! Si tienes más preguntas, no dudes en preguntarme.",
				}
			},
		},
		{
			key:      "ayuda_general",
			patterns: []string{"ayuda", "help", "socorro", "necesito ayuda", "no sé qué hacer", "perdido", "confundido"},
			responses: func(e Enrichment) []string {
				return []string{
					"¡No te preocupes! Estoy aquí para ayudarte. ¿Qué tipo de asunto legal tienes?",
					"Tranquilo, te ayudo a encontrar la solución. ¿Podrías contarme qué necesitas?",
					"¡Por supuesto! Te guío paso a paso. ¿En qué área del derecho necesitas asesoramiento?",
				}
			},
		},
		{
			key:      "preguntas_generales",
			patterns: []string{"pregunta", "duda", "curiosidad", "saber", "conocer", "entender", "qué es", "cómo funciona"},
			responses: func(e Enrichment) []string {
				return []string{
					"¡Me encanta que tengas curiosidad! ¿Qué te gustaría saber sobre nuestros servicios legales?",
					"¡Excelente pregunta! Estoy aquí para aclarar todas tus dudas. ¿Qué te interesa conocer?",
					"¡Por supuesto! Te explico todo lo que necesites saber. ¿Qué te gustaría entender mejor?",
				}
			},
		},
		{
			key:      "experiencia",
			patterns: []string{"experiencia", "años", "tiempo", "cuánto tiempo", "antigüedad", "trayectoria"},
			responses: func(e Enrichment) []string {
				return []string{
					"Nuestro despacho tiene años de experiencia en múltiples áreas del derecho. Nuestros abogados son profesionales altamente calificados.",
					"Contamos con amplia experiencia en casos complejos. Nuestro equipo tiene décadas de práctica legal combinada.",
					"Tenemos una sólida trayectoria en el ámbito legal. Nuestros abogados están especializados en sus respectivas áreas.",
				}
			},
		},
		{
			key:      "confidencialidad",
			patterns: []string{"confidencial", "secreto", "privacidad", "discreto", "confianza", "reservado"},
			responses: func(e Enrichment) []string {
				return []string{
					"La confidencialidad es fundamental en nuestro trabajo. Todas las consultas y casos son tratados con absoluta discreción.",
					"Tu privacidad es nuestra prioridad. Toda la información que compartas con nosotros está protegida por el secreto profesional.",
					"Puedes confiar en nuestra discreción. El secreto profesional es la base de nuestra relación con los clientes.",
				}
			},
		},
	}
}
